package client

//go:generate go run ../../apps/metashare openapi -o openapi.json
//go:generate go tool oapi-codegen -config config.yaml openapi.json
