// Package api exposes the ingestion and retrieval pipeline over HTTP.
package api
