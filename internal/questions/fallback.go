package questions

import (
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

var fallbackBank = []player.Question{
	{Question: "2 + 2 = ?", Type: player.MultipleChoice, Options: []string{"3", "4", "5", "6"}, Answer: "4",
		Explanation: "You have 2 sweets and get 2 more, so now you have 4 sweets."},
	{Question: "5 - 1 = 4. True or false?", Type: player.TrueFalse, Options: []string{"True", "False"}, Answer: "True",
		Explanation: "Exactly! 5 take away 1 leaves 4."},
	{Question: "3 x 3 = ?", Type: player.MultipleChoice, Options: []string{"6", "7", "8", "9"}, Answer: "9",
		Explanation: "3 taken 3 times: 3 plus 3 is 6, plus 3 more is 9."},
	{Question: "10 - ___ = 7", Type: player.FillInTheBlank, Answer: "3",
		Explanation: "10 take away 3 equals 7."},
	{Question: "10 + 0 = ?", Type: player.MultipleChoice, Options: []string{"0", "1", "10", "100"}, Answer: "10",
		Explanation: "Any number plus 0 stays the same."},
	{Question: "How many sides does a square have?", Type: player.MultipleChoice, Options: []string{"2", "3", "4", "5"}, Answer: "4",
		Explanation: "A square has 4 equal sides."},
	{Question: "Which is the largest of 2, 8, 5 and 1?", Type: player.MultipleChoice, Options: []string{"2", "8", "5", "1"}, Answer: "8",
		Explanation: "8 is bigger than every other number in the list."},
	{Question: "An has 3 balls and Binh gives An 2 more. How many balls does An have now?", Type: player.MultipleChoice,
		Options: []string{"3 balls", "4 balls", "5 balls", "6 balls"}, Answer: "5 balls",
		Explanation: "To find the total, add them up: 3 + 2 = 5."},
	{Question: "2 x 4 = 8. True or false?", Type: player.TrueFalse, Options: []string{"True", "False"}, Answer: "True",
		Explanation: "Right, 2 times 4 is 8."},
	{Question: "What number comes right after 99?", Type: player.FillInTheBlank, Answer: "100",
		Explanation: "The next number is always one more, so after 99 comes 100."},
}

// FallbackQuestions returns the offline bank in a fresh random order.
func FallbackQuestions(rng core.Rand) []player.Question {
	out := make([]player.Question, len(fallbackBank))
	for i, q := range fallbackBank {
		out[i] = q.Clone()
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// fallbackBatch returns up to n distinct offline questions.
func fallbackBatch(rng core.Rand, n int) []player.Question {
	qs := FallbackQuestions(rng)
	if n <= 0 || n >= len(qs) {
		return qs
	}
	return qs[:n]
}
