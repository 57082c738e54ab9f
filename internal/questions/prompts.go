package questions

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

const (
	promptHistoryLimit  = 20
	promptMistakesLimit = 10
)

var topicPrompts = map[player.Topic]string{
	player.TopicGeneral:                "a mix of math thinking topics suitable for the grade",
	player.TopicAdditionSubtraction:    "addition and subtraction",
	player.TopicMultiplicationDivision: "multiplication and division",
	player.TopicComparison:             "comparing numbers (greater, smaller, equal)",
	player.TopicWordProblems:           "short story word problems",
	player.TopicGeometry:               "basic shapes (squares, circles, triangles, rectangles) and their properties",
	player.TopicMeasurement:            "measurement of length, weight, time and money",
	player.TopicLogic:                  "logic, number patterns and puzzles",
	player.TopicFractions:              "basic fractions",
}

const questionShape = `Each question is a JSON object with the fields:
"question" (string), "type" ("multiple_choice", "fill_in_the_blank" or "true_false"),
"options" (4 strings for multiple_choice, ["True", "False"] for true_false, empty for fill_in_the_blank),
"answer" (string, must be one of the options for multiple_choice and true_false),
"explanation" (one short sentence a tutor would say to a child).`

// prompter builds provider prompts in the configured content language.
type prompter struct {
	language   string
	difficulty *config.DifficultyScale
}

func newPrompter(rules config.Rules) prompter {
	lang := strings.TrimSpace(rules.Content.Language)
	if lang == "" {
		lang = "English"
	}
	return prompter{language: lang, difficulty: config.NewDifficultyScale(rules.Difficulty)}
}

func (p prompter) system() string {
	return fmt.Sprintf("You are a cheerful primary school math tutor. Write every question, option and explanation in %s. "+
		"Never ask the child to imagine a picture; every fact needed to answer must be in the text.", p.language)
}

func (p prompter) questions(req Request) string {
	topic, ok := topicPrompts[req.Topic]
	if !ok {
		topic = topicPrompts[player.TopicGeneral]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create %d fun math questions for a grade %d student.\n", req.Count, req.Grade)
	fmt.Fprintf(&b, "Topic (mandatory, every question): %s.\n", topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", p.difficulty.Describe(req.Level))
	b.WriteString("Mix multiple_choice, fill_in_the_blank and true_false questions. Multiple choice has exactly one correct option.\n")
	b.WriteString(questionShape + "\n")
	b.WriteString(`Return a JSON object {"questions": [...]}.` + "\n")

	if history := tail(req.History, promptHistoryLimit); len(history) > 0 {
		b.WriteString("\nThe questions must be new. Do not repeat these recent questions or close variants:\n")
		for _, q := range history {
			fmt.Fprintf(&b, "- %s\n", q.Question)
		}
	}
	if mistakes := tail(req.Mistakes, promptMistakesLimit); len(mistakes) > 0 {
		b.WriteString("\nFor review you may rework one or two of these missed questions with new numbers or context:\n")
		for _, m := range mistakes {
			fmt.Fprintf(&b, "- Question: %q, answer: %q\n", m.Question.Question, m.Question.Answer)
		}
	}
	return b.String()
}

func (p prompter) eventChallenge(grade, level, count int) string {
	return fmt.Sprintf("Create %d very easy math questions a grade %d student can answer quickly in a speed round.\n"+
		"Difficulty: %s Prefer mental arithmetic and one-step questions.\n"+
		"Use only multiple_choice or true_false questions.\n%s\n"+
		`Return a JSON object {"questions": [...]}.`,
		count, grade, p.difficulty.Describe(level), questionShape)
}

func (p prompter) riddle(grade int) string {
	return fmt.Sprintf("Create ONE clever, funny logic riddle or trick math question for a grade %d student.\n"+
		"It should need a little reasoning, not just calculation. Use multiple_choice with 4 plausible options and one correct answer.\n%s\n"+
		"Return the question as a single JSON object.", grade, questionShape)
}

func (p prompter) single(idea string, grade int) string {
	return fmt.Sprintf("Be a playful storyteller and math tutor for a grade %d student.\n"+
		"Based on the child's idea %q, create ONE original word problem that is directly about the idea.\n"+
		"Use multiple_choice with 4 options.\n%s\n"+
		"Return the question as a single JSON object.", grade, idea, questionShape)
}

func (p prompter) hint(question string, grade int) string {
	return fmt.Sprintf("Here is a math question for a grade %d student: %q.\n"+
		"Give a short, simple hint about the first step or the method. Do NOT reveal the final answer.", grade, question)
}

func (p prompter) tutor(a player.AnsweredQuestion, grade int) string {
	return fmt.Sprintf("A grade %d student answered a question wrongly. Explain it step by step as a kind tutor talking to the child.\n"+
		"Start with encouragement, explain what the question asks, gently show why %q is not right, walk through the correct solution, "+
		"and end with a cheer.\nQuestion: %q\nStudent answered: %q\nCorrect answer: %q",
		grade, a.UserAnswer, a.Question.Question, a.UserAnswer, a.Question.Answer)
}

func (p prompter) analysis(grade int, missed []player.AnsweredQuestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a primary school education expert, analyse these math questions a grade %d student got wrong:\n", grade)
	for _, m := range missed {
		fmt.Fprintf(&b, "- Question: %q, student chose: %q, correct answer: %q\n", m.Question.Question, m.UserAnswer, m.Question.Answer)
	}
	b.WriteString("In 3-4 positive, constructive sentences describe the weak spots and suggest exercises a parent can practise at home.")
	return b.String()
}

func tail[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
