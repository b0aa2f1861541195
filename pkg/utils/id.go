package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

const idLength = 10

// GenerateID returns a short random identifier for a pipeline run.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}
