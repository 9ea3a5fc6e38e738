// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"solace/internal/escalation"
	"solace/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumPosts int
}

// postTemplates maps each category to content the seeder samples from. The
// crisis templates deliberately include flagged wording so a seeded database
// exercises the escalation queue.
var postTemplates = map[models.Category][]string{
	models.CategoryMentalHealth: {
		"I have been feeling anxious every morning and it is getting worse.",
		"The stress is overwhelming and I do not know who to talk to.",
		"I barely eat anymore and I am always tired.",
	},
	models.CategoryRelationships: {
		"My partner and I keep fighting about the same things.",
		"I found out my best friend has been spreading rumors about me.",
	},
	models.CategoryAcademic: {
		"Exams are coming up and the pressure is unbearable.",
		"I failed two courses this term and my parents do not know yet.",
	},
	models.CategoryCrisis: {
		"I can't go on anymore. Everything feels hopeless.",
		"Lately I keep thinking there is no reason to live.",
	},
	models.CategorySubstanceAbuse: {
		"I have been drinking every night just to fall asleep.",
		"I cannot stop even though I promised myself I would.",
	},
	models.CategorySexualHealth: {
		"I am worried about a recent encounter and do not know where to get tested.",
	},
	models.CategorySTIsHIV: {
		"I just got a positive test result and I am terrified to tell anyone.",
	},
	models.CategoryFamilyHome: {
		"Things at home have been violent lately and I have nowhere to go.",
	},
	models.CategoryGeneral: {
		"Just needed a place to vent about my week.",
		"Does anyone else feel lonely even when surrounded by people?",
	},
}

var replyTemplates = []string{
	"Thank you for sharing this. You are not alone.",
	"I went through something similar last year. It does get better.",
	"Have you been able to talk to someone you trust about this?",
	"Sending you strength. Please keep us updated.",
	"There are people here who care about you.",
}

// Seeder populates the database with demo users, posts and replies.
type Seeder struct {
	db      *gorm.DB
	rng     *rand.Rand
	matcher *escalation.Matcher
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:      db,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		matcher: escalation.NewMatcher(escalation.DefaultRules()),
	}
}

// ClearAll removes all seeded data. Development only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"escalations", "replies", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, posts and replies according to opts. Posts are spread
// over the past 30 days so peak-usage aggregation has realistic histograms.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	log.Printf("Created %d users", len(users))

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return err
	}
	log.Printf("Created %d posts", len(posts))

	replies, err := s.createReplies(users, posts)
	if err != nil {
		return err
	}
	log.Printf("Created %d replies", replies)

	return nil
}

func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Solace-dev-pass1!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password: string(hashed),
			// roughly one moderator per ten members
			Moderator: i%10 == 0,
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

// createPosts stores posts after running them through the rule matcher, so
// flagged content ends up in the escalation queue exactly as it would at
// runtime.
func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		// cycle categories so every board gets content, crisis included
		category := models.Categories[i%len(models.Categories)]
		templates := postTemplates[category]
		content := templates[s.rng.Intn(len(templates))]

		level, reason := s.matcher.Check(content, category)
		post := &models.Post{
			AuthorID:         users[s.rng.Intn(len(users))].ID,
			Category:         category,
			Title:            gofakeit.Sentence(6),
			Content:          content,
			Status:           models.PostOpen,
			EscalationLevel:  level,
			EscalationReason: reason,
			CreatedAt:        s.pastTimestamp(30),
		}
		posts = append(posts, post)
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}

	var escalations []*models.Escalation
	for _, post := range posts {
		if post.EscalationLevel == models.LevelNone {
			continue
		}
		esc := &models.Escalation{
			Reference:  uuid.NewString(),
			PostID:     post.ID,
			Level:      post.EscalationLevel,
			Status:     models.EscalationPending,
			Reason:     post.EscalationReason,
			DetectedAt: post.CreatedAt,
		}
		// settle some of the backlog so analytics has response times and
		// resolution rates to report
		switch s.rng.Intn(4) {
		case 0:
			esc.Status = models.EscalationInProgress
		case 1:
			esc.Status = models.EscalationResolved
			resolved := esc.DetectedAt.Add(time.Duration(1+s.rng.Intn(12)) * time.Hour)
			esc.ResolvedAt = &resolved
		case 2:
			esc.Status = models.EscalationDismissed
		}
		escalations = append(escalations, esc)
	}
	if len(escalations) > 0 {
		if err := s.db.Create(&escalations).Error; err != nil {
			return nil, fmt.Errorf("create escalations: %w", err)
		}
	}
	return posts, nil
}

func (s *Seeder) createReplies(users []*models.User, posts []*models.Post) (int, error) {
	var replies []*models.Reply
	for _, post := range posts {
		// about a third of posts stay unanswered
		if s.rng.Intn(3) == 0 {
			continue
		}
		count := 1 + s.rng.Intn(4)
		for i := 0; i < count; i++ {
			replies = append(replies, &models.Reply{
				PostID:    post.ID,
				AuthorID:  users[s.rng.Intn(len(users))].ID,
				Content:   replyTemplates[s.rng.Intn(len(replyTemplates))],
				CreatedAt: post.CreatedAt.Add(time.Duration(1+s.rng.Intn(48)) * time.Hour),
			})
		}
	}
	if len(replies) == 0 {
		return 0, nil
	}
	if err := s.db.Create(&replies).Error; err != nil {
		return 0, fmt.Errorf("create replies: %w", err)
	}
	return len(replies), nil
}

func (s *Seeder) pastTimestamp(maxDays int) time.Time {
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().Add(
		-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}
