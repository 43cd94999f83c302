package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instagramPost(campusCode string, interactions, reach int) models.RawPublication {
	return models.RawPublication{
		Account:       fmt.Sprintf("Tec Campus %s [Instagram]", campusCode),
		SocialNetwork: "Instagram",
		Interactions:  interactions,
		Reach:         reach,
	}
}

func facebookPost(campusCode string, interactions, reach int) models.RawPublication {
	return models.RawPublication{
		Account:       fmt.Sprintf("Tec Campus %s [Facebook]", campusCode),
		SocialNetwork: "Facebook",
		Interactions:  interactions,
		Reach:         reach,
	}
}

func TestPublications_Select_KeepsTopFourByEngagement(t *testing.T) {
	p := NewPublications()

	// Engagement = interactions*10 + reach; interactions 0 keeps the score
	// equal to the reach value.
	records := []models.RawPublication{
		instagramPost("GDL", 0, 10),
		instagramPost("GDL", 0, 50),
		instagramPost("GDL", 0, 30),
		instagramPost("GDL", 0, 20),
		instagramPost("GDL", 0, 40),
	}

	groups := p.Select(records)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Publications, 4)

	scores := make([]int, 0, 4)
	for _, publication := range groups[0].Publications {
		scores = append(scores, publication.EngagementScore)
	}
	assert.Equal(t, []int{50, 40, 30, 20}, scores)
}

func TestPublications_Select_EngagementScoreFormula(t *testing.T) {
	p := NewPublications()

	groups := p.Select([]models.RawPublication{instagramPost("MTY", 7, 123)})
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Publications, 1)
	assert.Equal(t, 7*10+123, groups[0].Publications[0].EngagementScore)
}

func TestPublications_Select_DropsOtherPlatforms(t *testing.T) {
	p := NewPublications()

	records := []models.RawPublication{
		{Account: "Tec Campus MTY [Twitter]", SocialNetwork: "Twitter", Reach: 900},
		{Account: "Tec Campus MTY [X]", SocialNetwork: "X", Reach: 900},
		{Account: "Tec Campus MTY [YouTube]", SocialNetwork: "YouTube", Reach: 900},
		facebookPost("MTY", 0, 10),
	}

	groups := p.Select(records)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Publications, 1)
	assert.Equal(t, "Facebook", groups[0].Publications[0].SocialNetwork)
}

func TestPublications_Select_CampusWithNoQualifyingPostsIsAbsent(t *testing.T) {
	p := NewPublications()

	records := []models.RawPublication{
		{Account: "Tec Campus QRO [Twitter]", SocialNetwork: "Twitter", Reach: 900},
		instagramPost("MTY", 0, 10),
	}

	groups := p.Select(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "MTY", groups[0].CampusID)
}

func TestPublications_Select_DropsAccountsWithoutCampusTag(t *testing.T) {
	p := NewPublications()

	records := []models.RawPublication{
		{Account: "Tec Nacional [Instagram]", SocialNetwork: "Instagram", Reach: 900},
		{Account: "", SocialNetwork: "Instagram", Reach: 900},
		instagramPost("SLP", 0, 10),
	}

	groups := p.Select(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "SLP", groups[0].CampusID)
}

func TestPublications_Select_CaseInsensitiveExtraction(t *testing.T) {
	p := NewPublications()

	records := []models.RawPublication{
		{Account: "tec campus mty [instagram oficial]", SocialNetwork: "INSTAGRAM", Reach: 5},
	}

	groups := p.Select(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "MTY", groups[0].CampusID)
}

func TestPublications_Select_InstagramBeforeFacebook(t *testing.T) {
	p := NewPublications()

	records := []models.RawPublication{
		facebookPost("CVA", 0, 100),
		instagramPost("CVA", 0, 1),
		facebookPost("CVA", 0, 200),
		instagramPost("CVA", 0, 2),
	}

	groups := p.Select(records)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Publications, 4)

	networks := make([]string, 0, 4)
	for _, publication := range groups[0].Publications {
		networks = append(networks, publication.SocialNetwork)
	}
	assert.Equal(t, []string{"Instagram", "Instagram", "Facebook", "Facebook"}, networks)
}

func TestPublications_Select_FirstSeenCampusOrder(t *testing.T) {
	p := NewPublications()

	records := []models.RawPublication{
		instagramPost("PUE", 0, 1),
		instagramPost("AGS", 0, 1),
		instagramPost("PUE", 0, 2),
		instagramPost("CHI", 0, 1),
	}

	groups := p.Select(records)
	require.Len(t, groups, 3)
	assert.Equal(t, "PUE", groups[0].CampusID)
	assert.Equal(t, "AGS", groups[1].CampusID)
	assert.Equal(t, "CHI", groups[2].CampusID)
}

func TestPublications_Select_TiedScoresKeepInputOrder(t *testing.T) {
	p := NewPublications()

	first := instagramPost("LEO", 0, 10)
	first.OutboundPost = "first"
	second := instagramPost("LEO", 0, 10)
	second.OutboundPost = "second"

	groups := p.Select([]models.RawPublication{first, second})
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Publications, 2)
	assert.Equal(t, "first", groups[0].Publications[0].OutboundPost)
	assert.Equal(t, "second", groups[0].Publications[1].OutboundPost)
}

func TestPublications_Select_QuotaPerPlatform(t *testing.T) {
	p := NewPublications()

	var records []models.RawPublication
	for i := 0; i < 6; i++ {
		records = append(records, instagramPost("SON", 0, i))
		records = append(records, facebookPost("SON", 0, i))
	}

	groups := p.Select(records)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Publications, 8)

	instagram, facebook := 0, 0
	for _, publication := range groups[0].Publications {
		switch publication.SocialNetwork {
		case "Instagram":
			instagram++
		case "Facebook":
			facebook++
		}
	}
	assert.Equal(t, 4, instagram)
	assert.Equal(t, 4, facebook)
}

func TestPublications_Run(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "publications.json")

	lines := `{"ACCOUNT":"Tec Campus MTY [Instagram]","SOCIAL_NETWORK":"Instagram","INTERACCIONES_GENERAL__SUM":5,"ALCANCE_GENERAL__SUM":100,"PUBLISHEDTIME":"2025-08-01","OUTBOUND_POST":"https://example.com/p1"}
{"ACCOUNT":"Tec Campus MTY [Twitter]","SOCIAL_NETWORK":"Twitter","INTERACCIONES_GENERAL__SUM":50,"ALCANCE_GENERAL__SUM":1000}

{"ACCOUNT":"Cuenta Nacional","SOCIAL_NETWORK":"Instagram","INTERACCIONES_GENERAL__SUM":50}
`
	require.NoError(t, os.WriteFile(inputFile, []byte(lines), 0o644))

	groups, counts, err := NewPublications().Run(inputFile)
	require.NoError(t, err)

	require.Len(t, groups, 1)
	assert.Equal(t, "MTY", groups[0].CampusID)
	require.Len(t, groups[0].Publications, 1)
	assert.Equal(t, 150, groups[0].Publications[0].EngagementScore)

	assert.Equal(t, 3, counts.Read)
	assert.Equal(t, 1, counts.Kept)
	assert.Equal(t, 2, counts.Dropped)
}

func TestPublications_Run_MalformedLineAbortsTheRun(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "publications.json")
	require.NoError(t, os.WriteFile(inputFile, []byte("{broken\n"), 0o644))

	_, _, err := NewPublications().Run(inputFile)
	assert.Error(t, err)
}
