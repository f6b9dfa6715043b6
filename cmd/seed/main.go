package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Posts    []seedPost
}

type seedPost struct {
	Title string
	Body  string
}

var fixtures = []seedUser{
	{
		Name:     "Scott Jones",
		Email:    "scott@mail.com",
		Password: "password123",
		Posts: []seedPost{
			{Title: "Hello world", Body: "The very first post on this blog."},
			{Title: "Second thoughts", Body: "A follow-up with a bit more substance."},
		},
	},
	{
		Name:     "Dana Reyes",
		Email:    "dana@mail.com",
		Password: "password123",
		Posts: []seedPost{
			{Title: "Field notes", Body: "Observations collected over the past week."},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	ctx := context.Background()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()
	log.Println("Connected to database")

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	postRepo := repository.NewPostRepository(database)

	created := 0
	for _, fixture := range fixtures {
		existing, err := userRepo.FindByEmail(ctx, fixture.Email)
		if err != nil && err != mongo.ErrNoDocuments {
			log.Fatalf("Failed to look up %s: %v", fixture.Email, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", fixture.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(fixture.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &model.User{
			Name:     fixture.Name,
			Email:    fixture.Email,
			Password: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", fixture.Email, err)
		}

		for _, p := range fixture.Posts {
			post := &model.Post{
				Title:  p.Title,
				Body:   p.Body,
				UserID: user.ID,
			}
			if err := postRepo.Create(ctx, post); err != nil {
				log.Fatalf("Failed to create post %q: %v", p.Title, err)
			}
			created++
		}
		log.Printf("Seeded user %s with %d posts", fixture.Email, len(fixture.Posts))
	}

	log.Printf("Seeding complete: %d posts created", created)
}
