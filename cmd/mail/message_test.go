package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
)

const templateDir = "../../templates"

func TestBuildWardrobeReadyMessage(t *testing.T) {
	body, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeWardrobeReady,
		To:   "ana@example.com",
		Data: domain.WardrobeReadyMailData{
			RunID:       "run-1",
			Status:      string(domain.RunStatusSucceeded),
			Generations: 100,
			Wardrobes: []domain.WardrobeReadyMailOption{
				{Rank: 1, Fitness: 2.3456, OutfitQuality: 5.5, GarmentNames: []string{"Camiseta blanca", "Vaquero"}, OutfitCount: 4},
			},
		},
	})
	require.NoError(t, err)

	msg, err := buildMessage("noreply@ecocloset.app", templateDir, body)
	require.NoError(t, err)

	assert.Equal(t, []string{"<ana@example.com>"}, msg.GetToString())

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Armario 1")
	assert.Contains(t, buf.String(), "Camiseta blanca")
}

func TestBuildMessageErrors(t *testing.T) {
	_, err := buildMessage("noreply@ecocloset.app", templateDir, []byte("{"))
	assert.Error(t, err)

	_, err = buildMessage("noreply@ecocloset.app", templateDir, []byte(`{"type":"reset_password","to":"ana@example.com"}`))
	assert.ErrorContains(t, err, "不支持的邮件类型")

	_, err = buildMessage("noreply@ecocloset.app", templateDir, []byte(`{"type":"wardrobe_ready","to":"no es correo"}`))
	assert.Error(t, err)
}
