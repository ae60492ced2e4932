// Package jobs is the fire-and-forget gateway to background work. Callers
// enqueue a Kind plus a JSON payload and return immediately; a Worker (in
// this process or another one) consumes the kinds it has handlers for.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindRefreshGitHubRepositories Kind = "refresh_github_repositories"
	KindProvisionScratchOrg       Kind = "provision_scratch_org"
	KindDeleteScratchOrg          Kind = "delete_scratch_org"
	KindGetUnsavedChanges         Kind = "get_unsaved_changes"
	KindCommitChanges             Kind = "commit_changes"
)

// Job is the envelope stored on the queue.
type Job struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Attempt    int             `json:"attempt"`
	LastError  string          `json:"last_error,omitempty"`
}

// NewJob marshals payload into a fresh envelope.
func NewJob(kind Kind, payload any) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", kind, err)
	}
	return &Job{
		ID:         uuid.NewString(),
		Kind:       kind,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload into v.
func (j *Job) Decode(v any) error {
	if err := json.Unmarshal(j.Payload, v); err != nil {
		return fmt.Errorf("decoding %s payload: %w", j.Kind, err)
	}
	return nil
}

// Queue accepts work. Enqueue returns once the job is stored; it never
// waits for the job to run.
type Queue interface {
	Enqueue(ctx context.Context, kind Kind, payload any) error
}

// Consumer is the worker side of a queue.
type Consumer interface {
	// Dequeue blocks up to timeout for a job of one of kinds. It returns
	// (nil, nil) when nothing arrived in time.
	Dequeue(ctx context.Context, kinds []Kind, timeout time.Duration) (*Job, error)
	// Requeue puts a failed job back for another attempt.
	Requeue(ctx context.Context, job *Job) error
	// DeadLetter parks a job that will not be retried.
	DeadLetter(ctx context.Context, job *Job) error
}

type RefreshRepositoriesPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

type ScratchOrgPayload struct {
	ScratchOrgID uuid.UUID `json:"scratch_org_id"`
}

type ProvisionScratchOrgPayload struct {
	ScratchOrgID uuid.UUID `json:"scratch_org_id"`
	UserID       uuid.UUID `json:"user_id"`
}

type CommitChangesPayload struct {
	ScratchOrgID    uuid.UUID           `json:"scratch_org_id"`
	UserID          uuid.UUID           `json:"user_id"`
	Changes         map[string][]string `json:"changes"`
	CommitMessage   string              `json:"commit_message"`
	TargetDirectory string              `json:"target_directory,omitempty"`
}

func RefreshRepositories(ctx context.Context, q Queue, userID uuid.UUID) error {
	return q.Enqueue(ctx, KindRefreshGitHubRepositories, RefreshRepositoriesPayload{UserID: userID})
}

func ProvisionScratchOrg(ctx context.Context, q Queue, orgID, userID uuid.UUID) error {
	return q.Enqueue(ctx, KindProvisionScratchOrg, ProvisionScratchOrgPayload{ScratchOrgID: orgID, UserID: userID})
}

func DeleteScratchOrg(ctx context.Context, q Queue, orgID uuid.UUID) error {
	return q.Enqueue(ctx, KindDeleteScratchOrg, ScratchOrgPayload{ScratchOrgID: orgID})
}

func GetUnsavedChanges(ctx context.Context, q Queue, orgID uuid.UUID) error {
	return q.Enqueue(ctx, KindGetUnsavedChanges, ScratchOrgPayload{ScratchOrgID: orgID})
}

func CommitChanges(ctx context.Context, q Queue, p CommitChangesPayload) error {
	return q.Enqueue(ctx, KindCommitChanges, p)
}
