package pipeline

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	platformInstagram = "instagram"
	platformFacebook  = "facebook"

	// topPostsPerPlatform caps each campus at 4 Instagram + 4 Facebook posts.
	topPostsPerPlatform = 4
)

// Account tags look like "Tec de Monterrey Campus MTY [Instagram]".
var accountPattern = regexp.MustCompile(`(?i)Campus\s+(\w+)\s+\[`)

// keptPlatforms is the emit order within a campus group.
var keptPlatforms = []string{platformInstagram, platformFacebook}

// Publications filters the raw publications export down to the top posts per
// campus per platform, ranked by engagement score.
type Publications struct{}

// NewPublications creates the publications pipeline.
func NewPublications() *Publications {
	return &Publications{}
}

// Run reads the export and selects the top posts per campus.
func (p *Publications) Run(inputFile string) ([]models.CampusPublications, models.PipelineCounts, error) {
	var records []models.RawPublication
	err := readLines(inputFile, func(line []byte) error {
		var record models.RawPublication
		if err := json.Unmarshal(line, &record); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, models.PipelineCounts{}, err
	}
	logrus.Infof("Loaded %d publications from %s", len(records), inputFile)

	groups := p.Select(records)

	kept := 0
	for _, group := range groups {
		kept += len(group.Publications)
	}
	logrus.Infof("Selected %d publications across %d campuses", kept, len(groups))

	counts := models.PipelineCounts{Read: len(records), Kept: kept, Dropped: len(records) - kept}
	return groups, counts, nil
}

// Select groups records by extracted campus code and platform, keeps the top
// 4 per platform by engagement score, and emits one group per campus in
// first-seen order. Records whose account tag has no campus marker, or whose
// platform is neither Instagram nor Facebook, are dropped.
func (p *Publications) Select(records []models.RawPublication) []models.CampusPublications {
	byCampus := make(map[string]map[string][]models.Publication)
	var campusOrder []string

	for _, record := range records {
		match := accountPattern.FindStringSubmatch(record.Account)
		if match == nil {
			continue
		}
		code := strings.ToUpper(match[1])

		platform, ok := classifyPlatform(record.SocialNetwork)
		if !ok {
			continue
		}

		publication := models.Publication{
			PublishedTime:   record.PublishedTime,
			SocialNetwork:   record.SocialNetwork,
			Interactions:    record.Interactions,
			Account:         record.Account,
			Reach:           record.Reach,
			OutboundPost:    record.OutboundPost,
			EngagementScore: record.Interactions*10 + record.Reach,
		}

		if _, seen := byCampus[code]; !seen {
			byCampus[code] = make(map[string][]models.Publication)
			campusOrder = append(campusOrder, code)
		}
		byCampus[code][platform] = append(byCampus[code][platform], publication)
	}

	groups := make([]models.CampusPublications, 0, len(campusOrder))
	for _, code := range campusOrder {
		publications := []models.Publication{}
		for _, platform := range keptPlatforms {
			posts := byCampus[code][platform]
			// Stable sort keeps input order on tied scores.
			sort.SliceStable(posts, func(i, j int) bool {
				return posts[i].EngagementScore > posts[j].EngagementScore
			})
			if len(posts) > topPostsPerPlatform {
				posts = posts[:topPostsPerPlatform]
			}
			publications = append(publications, posts...)
		}
		groups = append(groups, models.CampusPublications{
			CampusID:     code,
			Publications: publications,
		})
	}

	return groups
}

// classifyPlatform normalizes the free-form SOCIAL_NETWORK value. Only
// Instagram and Facebook survive; Twitter/X and everything else is dropped.
func classifyPlatform(socialNetwork string) (string, bool) {
	s := strings.ToLower(socialNetwork)
	switch {
	case strings.Contains(s, platformInstagram):
		return platformInstagram, true
	case strings.Contains(s, platformFacebook):
		return platformFacebook, true
	default:
		return "", false
	}
}
