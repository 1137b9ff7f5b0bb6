package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	emaildomain "mailqa-backend/internal/email/domain"
	emailRepo "mailqa-backend/internal/email/repository"
	emailUsecase "mailqa-backend/internal/email/usecase"
	"mailqa-backend/pkg/ai"
	"mailqa-backend/pkg/config"

	"github.com/fatih/color"
)

var (
	jsonFile = flag.String("file", "", "JSON batch of emails to upload instead of the sample")
	mboxFile = flag.String("mbox", "", "mbox file to import instead of the sample")
	fast     = flag.Bool("fast", false, "Disable simulated latency")
)

func main() {
	flag.Parse()
	cfg := config.Load()

	// Handle interrupts
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nShutting down...")
		os.Exit(0)
	}()

	delay := emailUsecase.Delay(emailUsecase.Sleep)
	if *fast || !cfg.SimulateLatency {
		delay = emailUsecase.NoDelay
	}

	responder, err := ai.NewResponder(ai.Config{Provider: ai.ProviderKeyword})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	workspace := emailUsecase.NewWorkspaceUsecase(
		emailRepo.NewWorkspaceRepository(),
		responder,
		emailUsecase.NewIndexer(delay, cfg.IndexDelay),
		emailUsecase.Options{
			Delay:  delay,
			Delays: emailUsecase.Delays{Load: cfg.LoadDelay, Upload: cfg.UploadDelay, Answer: cfg.AnswerDelay},
		},
	)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Println(boldGreen("📬 Email Q&A"))

	emails, err := load(workspace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s emails\n", boldCyan(strconv.Itoa(len(emails))))

	_, err = workspace.IndexEmails(func(partial []emaildomain.IndexResult) {
		last := partial[len(partial)-1]
		fmt.Printf("  %s %d/%d  id=%s vector=%s similarity=%.2f\n",
			yellow("indexed"), len(partial), len(emails), last.ID, last.VectorID, last.Similarity)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Suggested questions:")
	for i, q := range workspace.SuggestedQuestions() {
		fmt.Printf("  %d. %s\n", i+1, q)
	}
	fmt.Println("Type a question, a suggestion number, 'summary', or 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "exit":
			return
		case "summary":
			s := workspace.Summary()
			fmt.Printf("%s loaded=%d indexed=%d questions=%d by topic=%v\n\n",
				boldCyan("Summary:"), s.EmailsLoaded, s.EmailsIndexed, s.QuestionsProcessed, s.AnswersByTopic)
			continue
		}

		if n, err := strconv.Atoi(input); err == nil {
			suggestions := workspace.SuggestedQuestions()
			if n >= 1 && n <= len(suggestions) {
				input = suggestions[n-1]
				fmt.Println(input)
			}
		}

		answer, err := workspace.AskQuestion(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
			continue
		}

		fmt.Printf("%s %s\n", boldCyan("Assistant:"), answer.Answer)
		fmt.Println()
	}
}

func load(workspace emailUsecase.WorkspaceUsecase) ([]emaildomain.Email, error) {
	switch {
	case *jsonFile != "":
		raw, err := os.ReadFile(*jsonFile)
		if err != nil {
			return nil, err
		}
		return workspace.UploadEmails(raw)
	case *mboxFile != "":
		f, err := os.Open(*mboxFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return workspace.ImportMbox(f)
	default:
		return workspace.LoadSampleEmails()
	}
}
