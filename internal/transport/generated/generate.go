// Package generated holds the HTTP bindings produced from api/openapi.yaml.
package generated

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,chi-server -package generated -o api.gen.go ../../../api/openapi.yaml
