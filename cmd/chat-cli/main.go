package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"receptari/internal/chatbot"
	"receptari/internal/recipe"
	"receptari/pkg/database"
)

// chat-cli talks to the chatbot against the local store, for trying out the
// intent tables without a frontend.
func main() {
	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	repo := recipe.NewRepo(db)
	bot := chatbot.New(repo)

	total, err := repo.Count(context.Background())
	if err != nil {
		log.Fatalf("count: %v", err)
	}
	fmt.Printf("receptari chat (%d receptes carregades). Escriu 'sortir' per acabar.\n", total)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "sortir") {
			fmt.Println("Fins aviat!")
			break
		}

		resp, err := bot.Respond(context.Background(), line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(resp.Text)
		if resp.Recipe != nil {
			fmt.Printf("  -> %s [%s]\n", resp.Recipe.Name, resp.Recipe.Category)
		}
	}
}
