// Command seed wipes and repopulates the database with sample books and
// accounts for local development.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/pagebound/bookstore-backend/internal/dbmigrate"
	"github.com/pagebound/bookstore-backend/internal/modules/catalog"
	"github.com/pagebound/bookstore-backend/internal/modules/user"
)

var books = []catalog.Book{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Price: 12.99, Stock: 15,
		Description: "A classic novel depicting the Jazz Age in the United States.", Category: "Fiction"},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", Price: 14.99, Stock: 20,
		Description: "A novel about racial injustice and moral growth in the American South.", Category: "Fiction"},
	{Title: "1984", Author: "George Orwell", Price: 11.99, Stock: 12,
		Description: "A dystopian novel describing a totalitarian regime and mass surveillance.", Category: "Science Fiction"},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", Price: 16.99, Stock: 25,
		Description: "A fantasy novel about the quest of Bilbo Baggins.", Category: "Fantasy"},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Price: 9.99, Stock: 18,
		Description: "A romantic novel about the Bennet family, focusing on character development.", Category: "Romance"},
	{Title: "Sapiens: A Brief History of Humankind", Author: "Yuval Noah Harari", Price: 18.99, Stock: 14,
		Description: "A book about the history and evolution of humans.", Category: "Non-Fiction"},
	{Title: "The Catcher in the Rye", Author: "J.D. Salinger", Price: 10.99, Stock: 22,
		Description: "A novel about teenage angst and alienation.", Category: "Fiction"},
	{Title: "The Da Vinci Code", Author: "Dan Brown", Price: 13.99, Stock: 30,
		Description: "A mystery thriller novel about secret religious societies.", Category: "Thriller"},
}

type account struct {
	name, email, password string
	role                  user.Role
}

var accounts = []account{
	{"Admin User", "admin@bookstore.com", "admin123", user.RoleAdmin},
	{"John Doe", "john@example.com", "password123", user.RoleUser},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	if err := dbmigrate.Run(db, "file://migrations"); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `TRUNCATE order_items, orders, books, users`); err != nil {
		log.Fatalf("clear existing data: %v", err)
	}
	fmt.Println("Cleared existing data")

	userRepo := user.NewPostgresRepository(db)
	for _, a := range accounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		u := &user.User{
			ID:           uuid.New(),
			Name:         a.name,
			Email:        a.email,
			PasswordHash: string(hashed),
			Role:         a.role,
		}
		if err := userRepo.CreateUser(ctx, u); err != nil {
			log.Fatalf("seed user %s: %v", a.email, err)
		}
	}
	fmt.Println("Users added successfully")

	catalogRepo := catalog.NewPostgresRepository(db)
	for _, b := range books {
		b.ID = uuid.New()
		b.Image = "default-book.jpg"
		if err := catalogRepo.Create(ctx, &b); err != nil {
			log.Fatalf("seed book %q: %v", b.Title, err)
		}
	}
	fmt.Println("Books added successfully")

	fmt.Println("Database seeded successfully!")
}
