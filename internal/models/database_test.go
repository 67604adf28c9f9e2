package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateValidate(t *testing.T) {
	candidate := Candidate{Name: "Test Person", Party: "Test Party", Province: ProvinceBagmati}
	assert.NoError(t, candidate.Validate())

	candidate.Name = ""
	assert.Error(t, candidate.Validate())

	candidate.Name = "Test Person"
	candidate.Province = "9"
	assert.Error(t, candidate.Validate())
}

func TestCandidateBeforeCreate_DefaultsProvince(t *testing.T) {
	candidate := Candidate{Name: "Test Person", Party: "Test Party"}
	assert.NoError(t, candidate.BeforeCreate(nil))
	assert.Equal(t, ProvinceBagmati, candidate.Province)
}

func TestQueryLogValidate(t *testing.T) {
	log := QueryLog{Query: "who is oli", Source: QuerySourceChat}
	assert.NoError(t, log.Validate())

	log.Source = "webhook"
	assert.Error(t, log.Validate())

	log = QueryLog{Query: "compare these"}
	assert.NoError(t, log.BeforeCreate(nil))
	assert.Equal(t, QuerySourceChat, log.Source)
}

func TestManifestoValidate(t *testing.T) {
	manifesto := Manifesto{CandidateID: 1, FilePath: "/uploads/m.pdf"}
	assert.NoError(t, manifesto.Validate())

	manifesto.CandidateID = 0
	assert.Error(t, manifesto.Validate())
}

func TestProvinceNamesCoverAllCodes(t *testing.T) {
	assert.Len(t, ProvinceNames, 7)
	assert.Equal(t, "Koshi Province", ProvinceNames[ProvinceKoshi])
	assert.Equal(t, "Sudurpashchim Province", ProvinceNames[ProvinceSudurpashchim])
}
