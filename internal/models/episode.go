package models

import "fmt"

// Episode represents a single episode of a show
type Episode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}

// Code returns the conventional SxxEyy code of the episode.
func (e Episode) Code() string {
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}
