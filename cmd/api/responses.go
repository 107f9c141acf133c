package main

import "program-portal-go/internal/model"

const (
	msgMethodNotAllowed = "Method not allowed"
	msgNotConfigured    = "Record store is not configured"
	msgNotFound         = "Program not found"
	msgUpstream         = "Failed to load programs"
)

type ListResponse struct {
	Items []model.ProgramSummary `json:"items"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
