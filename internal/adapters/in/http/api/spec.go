package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// BasePath is the prefix every contract route is served under.
const BasePath = "/api/v1"

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger returns the validated OpenAPI document. Each call returns a fresh
// copy so callers may modify it.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi document is invalid: %w", err)
	}
	return doc, nil
}

var registerOnce sync.Once

// RegisterSwaggerDoc publishes the document to swag, where echo-swagger reads
// it from. swag panics on a second registration, so only the first call has
// an effect.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	body, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerOnce.Do(func() {
		spec := &swag.Spec{
			Version:          doc.Info.Version,
			BasePath:         BasePath,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(body),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		}
		swag.Register(spec.InstanceName(), spec)
	})
	return nil
}
