// Package docs classification Training console API.
//
// This is the API Server for the training console. It validates, renders and
// submits MPIJob configurations and lists the training jobs in the cluster.
//
//	Schemes: http, https
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/yaml
//
// swagger:meta
package docs
