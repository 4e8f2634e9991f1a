// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with go generate ./cmd/nutricart-api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/auth/register": {
			"post": {
				"summary": "Register a new user",
				"tags": [
					"Auth"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/auth/login": {
			"post": {
				"summary": "Log in",
				"tags": [
					"Auth"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/auth/me": {
			"get": {
				"summary": "Current user",
				"tags": [
					"Auth"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/auth/profile": {
			"put": {
				"summary": "Update profile fields",
				"tags": [
					"Auth"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/auth/change-password": {
			"post": {
				"summary": "Change password",
				"tags": [
					"Auth"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/products": {
			"get": {
				"summary": "List active products",
				"tags": [
					"Products"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/products/{id}": {
			"get": {
				"summary": "Get a product",
				"tags": [
					"Products"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/categories": {
			"get": {
				"summary": "List product categories",
				"tags": [
					"Products"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/diet-plans": {
			"get": {
				"summary": "List diet plans",
				"tags": [
					"Catalog"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/diet-plans/{id}": {
			"get": {
				"summary": "Get a diet plan",
				"tags": [
					"Catalog"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/recipes": {
			"get": {
				"summary": "List recipes",
				"tags": [
					"Catalog"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/recipes/{id}": {
			"get": {
				"summary": "Get a recipe",
				"tags": [
					"Catalog"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/partnerships": {
			"get": {
				"summary": "List partner offers",
				"tags": [
					"Catalog"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/partnerships/{id}": {
			"get": {
				"summary": "Get a partner offer",
				"tags": [
					"Catalog"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/recommendations": {
			"post": {
				"summary": "Recommend diet plans",
				"tags": [
					"Catalog"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/cart": {
			"get": {
				"summary": "Get the cart",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"summary": "Empty the cart",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/cart/add": {
			"post": {
				"summary": "Add a product",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/cart/update": {
			"put": {
				"summary": "Set a line quantity",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/cart/remove/{productId}": {
			"delete": {
				"summary": "Remove a product",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "productId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/cart/clear": {
			"post": {
				"summary": "Empty the cart",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/cart/apply-coupon": {
			"post": {
				"summary": "Apply a coupon",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/cart/remove-coupon": {
			"post": {
				"summary": "Remove the coupon",
				"tags": [
					"Cart"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/{id}/orders": {
			"get": {
				"summary": "List the caller's orders, newest first",
				"tags": [
					"Orders"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"summary": "Place an order",
				"tags": [
					"Orders"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/users/{id}/orders/{orderId}": {
			"get": {
				"summary": "Get one of the caller's orders",
				"tags": [
					"Orders"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"name": "orderId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/users/{id}/subscription": {
			"put": {
				"summary": "Replace the caller's subscription",
				"tags": [
					"Subscription"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "NutriCart API",
	Description:      "Grocery and diet subscription storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
