package utils

import (
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Reference codes avoid look-alike characters so customers can read them over the phone.
const referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateReference returns a short order reference such as "SPK-7QH2M4".
func GenerateReference() string {
	id, err := gonanoid.Generate(referenceAlphabet, 6)
	if err != nil {
		return "SPK-" + strings.ToUpper(uuid.NewString()[:6])
	}
	return "SPK-" + id
}

func ToUUID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}
