// Package docs expone la especificación OpenAPI del servicio y la registra en swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// docTemplate es swagger.json tal cual; no usa marcadores de plantilla.
//
//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos de la API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Product Service API",
	Description:      "Catálogo de productos, categorías y etiquetas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
