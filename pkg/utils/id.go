package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a short random ID used to correlate the log lines of
// one sync run.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
