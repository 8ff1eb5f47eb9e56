// Package server provides the HTTP API for the shelfmap catalog.
//
// This file contains general API documentation annotations for Swag/OpenAPI
// generation. Individual endpoint annotations live in the handler files.
package server

// @title Shelfmap API
// @version 1.0
// @description REST API for browsing the book catalog: filtered pages, book
// @description details, categories, facet options and viewer preferences.
// @description Catalog reloads are announced over WebSocket and Server-Sent Events.
//
// @contact.name Shelfmap Project
// @contact.url https://github.com/agentstation/shelfmap
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for authentication (optional, configurable)
