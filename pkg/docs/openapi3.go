package docs

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/marklogic-community/mlmanager/pkg/config"
)

func NewOpenAPI3(config config.Config) openapi3.T {

	arrayOf := func(items *openapi3.SchemaRef) *openapi3.SchemaRef {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: "array", Items: items}}
	}

	openapiSpec := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "MarkLogic Management API",
			Description: "REST API used for administering the resources of a MarkLogic cluster",
			Version:     "2.0.0",
			License: &openapi3.License{
				Name: "Apache 2.0",
				URL:  "https://www.apache.org/licenses/LICENSE-2.0",
			},
			Contact: &openapi3.Contact{
				URL: "https://github.com/marklogic-community",
			},
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				Description: "Management API",
				URL:         fmt.Sprintf("%s://%s:%d", config.Protocol, config.Host, config.ManagementPort),
			},
			&openapi3.Server{
				Description: "Admin API",
				URL:         fmt.Sprintf("%s://%s:%d", config.Protocol, config.Host, config.AdminPort),
			},
		},
	}

	openapiSpec.Components.Schemas = openapi3.Schemas{
		"CertificateRequest": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("version", openapi3.NewStringSchema()).
				WithProperty("subject", openapi3.NewObjectSchema().
					WithProperty("countryName", openapi3.NewStringSchema()).
					WithProperty("stateOrProvinceName", openapi3.NewStringSchema()).
					WithProperty("localityName", openapi3.NewStringSchema()).
					WithProperty("organizationName", openapi3.NewStringSchema()).
					WithProperty("organizationalUnitName", openapi3.NewStringSchema()).
					WithProperty("emailAddress", openapi3.NewStringSchema()).
					WithProperty("commonName", openapi3.NewStringSchema())),
		),
		"CertificateTemplate": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("template-id", openapi3.NewStringSchema()).
				WithProperty("template-name", openapi3.NewStringSchema()).
				WithProperty("template-description", openapi3.NewStringSchema()).
				WithProperty("template-version", openapi3.NewStringSchema()).
				WithProperty("key-type", openapi3.NewStringSchema()).
				WithProperty("options", openapi3.NewObjectSchema().
					WithProperty("key-length", openapi3.NewIntegerSchema()).
					WithProperty("pass-phrase", openapi3.NewStringSchema())).
				WithPropertyRef("req", &openapi3.SchemaRef{
					Ref: "#/components/schemas/CertificateRequest",
				}),
		),
		"Certificate": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("template-id", openapi3.NewStringSchema()).
				WithProperty("common-name", openapi3.NewStringSchema()).
				WithProperty("dns-name", openapi3.NewStringSchema()).
				WithProperty("ip-addr", openapi3.NewStringSchema()).
				WithProperty("valid-for", openapi3.NewIntegerSchema()).
				WithProperty("temporary", openapi3.NewBoolSchema()),
		),
		"Database": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("database-name", openapi3.NewStringSchema()).
				WithProperty("enabled", openapi3.NewBoolSchema()).
				WithPropertyRef("forest", arrayOf(openapi3.NewSchemaRef("", openapi3.NewStringSchema()))).
				WithProperty("security-database", openapi3.NewStringSchema()).
				WithProperty("schema-database", openapi3.NewStringSchema()),
		),
		"Forest": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("forest-name", openapi3.NewStringSchema()).
				WithProperty("host", openapi3.NewStringSchema()).
				WithProperty("database", openapi3.NewStringSchema()).
				WithProperty("data-directory", openapi3.NewStringSchema()).
				WithProperty("enabled", openapi3.NewBoolSchema()),
		),
		"Server": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("server-name", openapi3.NewStringSchema()).
				WithProperty("group-name", openapi3.NewStringSchema()).
				WithProperty("server-type", openapi3.NewStringSchema()).
				WithProperty("port", openapi3.NewIntegerSchema()).
				WithProperty("root", openapi3.NewStringSchema()).
				WithProperty("content-database", openapi3.NewStringSchema()).
				WithProperty("modules-database", openapi3.NewStringSchema()),
		),
		"Host": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("host-name", openapi3.NewStringSchema()).
				WithProperty("group", openapi3.NewStringSchema()).
				WithProperty("zone", openapi3.NewStringSchema()).
				WithProperty("bind-port", openapi3.NewIntegerSchema()),
		),
		"User": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("user-name", openapi3.NewStringSchema()).
				WithProperty("password", openapi3.NewStringSchema()).
				WithProperty("description", openapi3.NewStringSchema()).
				WithPropertyRef("role", arrayOf(openapi3.NewSchemaRef("", openapi3.NewStringSchema()))),
		),
		"Role": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("role-name", openapi3.NewStringSchema()).
				WithProperty("description", openapi3.NewStringSchema()).
				WithPropertyRef("role", arrayOf(openapi3.NewSchemaRef("", openapi3.NewStringSchema()))),
		),
		"Group": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("group-name", openapi3.NewStringSchema()).
				WithProperty("list-cache-size", openapi3.NewIntegerSchema()),
		),
		"ClusterProperties": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("cluster-name", openapi3.NewStringSchema()).
				WithProperty("cluster-id", openapi3.NewStringSchema()).
				WithProperty("ssl-fips", openapi3.NewBoolSchema()),
		),
		"ListItem": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("idref", openapi3.NewStringSchema()).
				WithProperty("nameref", openapi3.NewStringSchema()).
				WithProperty("kindref", openapi3.NewStringSchema()).
				WithProperty("groupnameref", openapi3.NewStringSchema()),
		),
	}

	openapiSpec.Components.RequestBodies = openapi3.RequestBodies{
		"operationRequest": &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Request used for applying an operation to a resource.").
				WithRequired(true).
				WithJSONSchema(openapi3.NewSchema().
					WithProperty("operation", openapi3.NewStringSchema()),
				),
		},
		"initRequest": &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Request used for initializing a MarkLogic host.").
				WithRequired(true).
				WithJSONSchema(openapi3.NewSchema().
					WithProperty("license-key", openapi3.NewStringSchema()).
					WithProperty("licensee", openapi3.NewStringSchema()),
				),
		},
		"instanceAdminRequest": &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Request used for installing the security database and admin user.").
				WithRequired(true).
				WithJSONSchema(openapi3.NewSchema().
					WithProperty("admin-username", openapi3.NewStringSchema()).
					WithProperty("admin-password", openapi3.NewStringSchema()).
					WithProperty("realm", openapi3.NewStringSchema()),
				),
		},
	}

	openapiSpec.Components.Responses = openapi3.Responses{
		"ErrorResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response when errors happen.").
				WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema().
					WithProperty("errorResponse", openapi3.NewObjectSchema().
						WithProperty("status-code", openapi3.NewIntegerSchema()).
						WithProperty("status", openapi3.NewStringSchema()).
						WithProperty("message-code", openapi3.NewStringSchema()).
						WithProperty("message", openapi3.NewStringSchema())))),
		},
		"ResourceListResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returned back after listing resources. The list is wrapped under a resource-specific key such as database-default-list.").
				WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema().
					WithProperty("list-items", openapi3.NewObjectSchema().
						WithPropertyRef("list-item", arrayOf(&openapi3.SchemaRef{
							Ref: "#/components/schemas/ListItem",
						}))))),
		},
		"CreatedResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returned back after creating a resource. The Location header carries the URI of the new resource.").
				WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema())),
		},
		"NoContentResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returned back after applying a change."),
		},
		"OperationResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returned back after accepting an operation.").
				WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema())),
		},
		"StatusResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returned back after querying the cluster status view.").
				WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema().
					WithProperty("local-cluster-status", openapi3.NewObjectSchema().
						WithProperty("name", openapi3.NewStringSchema()).
						WithProperty("version", openapi3.NewStringSchema()).
						WithProperty("hosts-count", openapi3.NewIntegerSchema())))),
		},
		"LogResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returned back after reading a log file.").
				WithContent(openapi3.Content{
					"text/plain": openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
				}),
		},
		"TimestampResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returned back after reading the server timestamp.").
				WithContent(openapi3.Content{
					"text/plain": openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
				}),
		},
	}

	idParam := func() []*openapi3.ParameterRef {
		return []*openapi3.ParameterRef{
			{
				Value: openapi3.NewPathParameter("id").
					WithDescription("A resource id or name").
					WithSchema(openapi3.NewStringSchema()),
			},
		}
	}

	queryParam := func(name, description string) *openapi3.ParameterRef {
		return &openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter(name).
				WithDescription(description).
				WithSchema(openapi3.NewStringSchema()),
		}
	}

	withErrors := func(responses openapi3.Responses) openapi3.Responses {
		responses["400"] = &openapi3.ResponseRef{
			Ref: "#/components/responses/ErrorResponse",
		}
		responses["401"] = &openapi3.ResponseRef{
			Ref: "#/components/responses/ErrorResponse",
		}
		responses["404"] = &openapi3.ResponseRef{
			Ref: "#/components/responses/ErrorResponse",
		}
		responses["500"] = &openapi3.ResponseRef{
			Ref: "#/components/responses/ErrorResponse",
		}
		return responses
	}

	listOp := func(id, kind string) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: "List" + id,
			Description: fmt.Sprintf("List the %s resources of the cluster", kind),
			Responses: withErrors(openapi3.Responses{
				"200": &openapi3.ResponseRef{
					Ref: "#/components/responses/ResourceListResponse",
				},
			}),
		}
	}

	createOp := func(id, kind, schema string) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: "Create" + id,
			Description: fmt.Sprintf("Create a new %s", kind),
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription(fmt.Sprintf("The initial %s properties", kind)).
					WithRequired(true).
					WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
						Ref: "#/components/schemas/" + schema,
					})),
			},
			Responses: withErrors(openapi3.Responses{
				"201": &openapi3.ResponseRef{
					Ref: "#/components/responses/CreatedResponse",
				},
			}),
		}
	}

	readOp := func(id, kind, schema string, extra ...*openapi3.ParameterRef) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: "Get" + id + "Properties",
			Description: fmt.Sprintf("Read the properties of a %s", kind),
			Parameters:  append(idParam(), extra...),
			Responses: withErrors(openapi3.Responses{
				"200": &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription(fmt.Sprintf("The current %s properties.", kind)).
						WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
							Ref: "#/components/schemas/" + schema,
						})),
				},
			}),
		}
	}

	updateOp := func(id, kind, schema string, extra ...*openapi3.ParameterRef) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: "Put" + id + "Properties",
			Description: fmt.Sprintf("Update the properties of a %s", kind),
			Parameters:  append(idParam(), extra...),
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription(fmt.Sprintf("The %s properties to change", kind)).
					WithRequired(true).
					WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
						Ref: "#/components/schemas/" + schema,
					})),
			},
			Responses: withErrors(openapi3.Responses{
				"204": &openapi3.ResponseRef{
					Ref: "#/components/responses/NoContentResponse",
				},
			}),
		}
	}

	deleteOp := func(id, kind string, extra ...*openapi3.ParameterRef) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: "Delete" + id,
			Description: fmt.Sprintf("Remove a %s", kind),
			Parameters:  append(idParam(), extra...),
			Responses: withErrors(openapi3.Responses{
				"204": &openapi3.ResponseRef{
					Ref: "#/components/responses/NoContentResponse",
				},
			}),
		}
	}

	operateOp := func(id, description string) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: "Post" + id + "Operation",
			Description: description,
			Parameters:  idParam(),
			RequestBody: &openapi3.RequestBodyRef{
				Ref: "#/components/requestBodies/operationRequest",
			},
			Responses: withErrors(openapi3.Responses{
				"200": &openapi3.ResponseRef{
					Ref: "#/components/responses/OperationResponse",
				},
				"201": &openapi3.ResponseRef{
					Ref: "#/components/responses/OperationResponse",
				},
				"202": &openapi3.ResponseRef{
					Ref: "#/components/responses/OperationResponse",
				},
			}),
		}
	}

	openapiSpec.Paths = openapi3.Paths{
		"/manage/v2/certificate-templates": &openapi3.PathItem{
			Get:  listOp("CertificateTemplates", "certificate template"),
			Post: createOp("CertificateTemplate", "certificate template", "CertificateTemplate"),
		},
		"/manage/v2/certificate-templates/{id}": &openapi3.PathItem{
			Post: operateOp("CertificateTemplate",
				"Apply generate-certificate-authority, generate-temporary-certificate, get-certificate or get-certificates-for-template to a certificate template"),
			Delete: deleteOp("CertificateTemplate", "certificate template"),
		},
		"/manage/v2/certificate-templates/{id}/properties": &openapi3.PathItem{
			Get: readOp("CertificateTemplate", "certificate template", "CertificateTemplate"),
			Put: updateOp("CertificateTemplate", "certificate template", "CertificateTemplate"),
		},
		"/manage/v2/databases": &openapi3.PathItem{
			Get:  listOp("Databases", "database"),
			Post: createOp("Database", "database", "Database"),
		},
		"/manage/v2/databases/{id}": &openapi3.PathItem{
			Post: operateOp("Database", "Apply clear-database to a database"),
			Delete: deleteOp("Database", "database",
				queryParam("forest-delete", "Set to data to delete the attached forests with the database")),
		},
		"/manage/v2/databases/{id}/properties": &openapi3.PathItem{
			Get: readOp("Database", "database", "Database"),
			Put: updateOp("Database", "database", "Database"),
		},
		"/manage/v2/forests": &openapi3.PathItem{
			Get:  listOp("Forests", "forest"),
			Post: createOp("Forest", "forest", "Forest"),
		},
		"/manage/v2/forests/{id}": &openapi3.PathItem{
			Delete: deleteOp("Forest", "forest",
				queryParam("level", "Either full or config-only")),
		},
		"/manage/v2/forests/{id}/properties": &openapi3.PathItem{
			Get: readOp("Forest", "forest", "Forest"),
			Put: updateOp("Forest", "forest", "Forest"),
		},
		"/manage/v2/servers": &openapi3.PathItem{
			Get:  listOp("Servers", "app server"),
			Post: createOp("Server", "app server", "Server"),
		},
		"/manage/v2/servers/{id}": &openapi3.PathItem{
			Delete: deleteOp("Server", "app server",
				queryParam("group-id", "The group the server belongs to")),
		},
		"/manage/v2/servers/{id}/properties": &openapi3.PathItem{
			Get: readOp("Server", "app server", "Server",
				queryParam("group-id", "The group the server belongs to")),
			Put: updateOp("Server", "app server", "Server",
				queryParam("group-id", "The group the server belongs to")),
		},
		"/manage/v2/hosts": &openapi3.PathItem{
			Get: listOp("Hosts", "host"),
		},
		"/manage/v2/hosts/{id}": &openapi3.PathItem{
			Post: operateOp("Host", "Apply shutdown-host or restart-host to a host"),
		},
		"/manage/v2/hosts/{id}/properties": &openapi3.PathItem{
			Get: readOp("Host", "host", "Host"),
			Put: updateOp("Host", "host", "Host"),
		},
		"/manage/v2/users": &openapi3.PathItem{
			Get:  listOp("Users", "user"),
			Post: createOp("User", "user", "User"),
		},
		"/manage/v2/users/{id}": &openapi3.PathItem{
			Delete: deleteOp("User", "user"),
		},
		"/manage/v2/users/{id}/properties": &openapi3.PathItem{
			Get: readOp("User", "user", "User"),
			Put: updateOp("User", "user", "User"),
		},
		"/manage/v2/roles": &openapi3.PathItem{
			Get:  listOp("Roles", "role"),
			Post: createOp("Role", "role", "Role"),
		},
		"/manage/v2/roles/{id}": &openapi3.PathItem{
			Delete: deleteOp("Role", "role"),
		},
		"/manage/v2/roles/{id}/properties": &openapi3.PathItem{
			Get: readOp("Role", "role", "Role"),
			Put: updateOp("Role", "role", "Role"),
		},
		"/manage/v2/groups": &openapi3.PathItem{
			Get:  listOp("Groups", "group"),
			Post: createOp("Group", "group", "Group"),
		},
		"/manage/v2/groups/{id}": &openapi3.PathItem{
			Delete: deleteOp("Group", "group"),
		},
		"/manage/v2/groups/{id}/properties": &openapi3.PathItem{
			Get: readOp("Group", "group", "Group"),
			Put: updateOp("Group", "group", "Group"),
		},
		"/manage/v2": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "GetClusterView",
				Description: "Read a view of the local cluster, such as the status view",
				Parameters: []*openapi3.ParameterRef{
					queryParam("view", "The cluster view to read, such as status"),
					queryParam("format", "The response format, json or xml"),
				},
				Responses: withErrors(openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/StatusResponse",
					},
				}),
			},
			Post: &openapi3.Operation{
				OperationID: "PostClusterOperation",
				Description: "Apply restart-local-cluster to the local cluster",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/operationRequest",
				},
				Responses: withErrors(openapi3.Responses{
					"202": &openapi3.ResponseRef{
						Ref: "#/components/responses/OperationResponse",
					},
				}),
			},
		},
		"/manage/v2/properties": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "GetClusterProperties",
				Description: "Read the properties of the local cluster",
				Responses: withErrors(openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Value: openapi3.NewResponse().
							WithDescription("The current cluster properties.").
							WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
								Ref: "#/components/schemas/ClusterProperties",
							})),
					},
				}),
			},
			Put: &openapi3.Operation{
				OperationID: "PutClusterProperties",
				Description: "Update the properties of the local cluster",
				RequestBody: &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().
						WithDescription("The cluster properties to change").
						WithRequired(true).
						WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
							Ref: "#/components/schemas/ClusterProperties",
						})),
				},
				Responses: withErrors(openapi3.Responses{
					"204": &openapi3.ResponseRef{
						Ref: "#/components/responses/NoContentResponse",
					},
				}),
			},
		},
		"/manage/v2/logs": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "GetLog",
				Description: "Read a log file from a host",
				Parameters: []*openapi3.ParameterRef{
					queryParam("filename", "The log file to read, such as ErrorLog.txt"),
					queryParam("host", "The host to read the log from"),
				},
				Responses: withErrors(openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/LogResponse",
					},
				}),
			},
		},
		"/admin/v1/init": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "InitHost",
				Description: "Initialize a freshly installed MarkLogic host",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/initRequest",
				},
				Responses: withErrors(openapi3.Responses{
					"202": &openapi3.ResponseRef{
						Ref: "#/components/responses/OperationResponse",
					},
					"204": &openapi3.ResponseRef{
						Ref: "#/components/responses/NoContentResponse",
					},
				}),
			},
		},
		"/admin/v1/instance-admin": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "InstanceAdmin",
				Description: "Install the security database and the admin user on an initialized host",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/instanceAdminRequest",
				},
				Responses: withErrors(openapi3.Responses{
					"202": &openapi3.ResponseRef{
						Ref: "#/components/responses/OperationResponse",
					},
				}),
			},
		},
		"/admin/v1/timestamp": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "GetTimestamp",
				Description: "Read the last startup timestamp of a host",
				Responses: withErrors(openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/TimestampResponse",
					},
				}),
			},
		},
	}

	return openapiSpec
}
