package cmd

import "github.com/josephgoksu/tasks/models"

type taskResponse struct {
	Status string      `json:"status"`
	Task   models.Task `json:"task"`
}

type deletedResponse struct {
	Status   string `json:"status"`
	ID       int    `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
	Deleted  int    `json:"deleted"`
}

type fileResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}
