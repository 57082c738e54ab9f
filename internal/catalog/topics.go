package catalog

import "github.com/vovakirdan/tui-mathquest/internal/player"

// TopicInfo describes a selectable quiz topic.
type TopicInfo struct {
	ID   player.Topic
	Name string
	Icon string
}

// Topics lists all topics in menu order.
var Topics = []TopicInfo{
	{ID: player.TopicGeneral, Name: "Mixed", Icon: "🎲"},
	{ID: player.TopicAdditionSubtraction, Name: "Addition & Subtraction", Icon: "➕"},
	{ID: player.TopicMultiplicationDivision, Name: "Multiplication & Division", Icon: "✖"},
	{ID: player.TopicComparison, Name: "Comparison", Icon: "⚖"},
	{ID: player.TopicWordProblems, Name: "Word Problems", Icon: "📝"},
	{ID: player.TopicGeometry, Name: "Geometry", Icon: "🔺"},
	{ID: player.TopicMeasurement, Name: "Measurement", Icon: "📏"},
	{ID: player.TopicLogic, Name: "Logic", Icon: "💡"},
	{ID: player.TopicFractions, Name: "Fractions", Icon: "🍕"},
}

var gradeTopics = map[int][]player.Topic{
	1: {player.TopicGeneral, player.TopicAdditionSubtraction, player.TopicComparison, player.TopicWordProblems, player.TopicGeometry},
	2: {player.TopicGeneral, player.TopicAdditionSubtraction, player.TopicMultiplicationDivision, player.TopicComparison,
		player.TopicWordProblems, player.TopicGeometry, player.TopicMeasurement, player.TopicLogic},
}

// TopicsForGrade returns the topics offered at a grade.
// Grades without an explicit list get every topic.
func TopicsForGrade(grade int) []TopicInfo {
	ids, ok := gradeTopics[grade]
	if !ok {
		return Topics
	}
	out := make([]TopicInfo, 0, len(ids))
	for _, t := range Topics {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// TopicName returns the display name of a topic, or its id when unknown.
func TopicName(id player.Topic) string {
	for _, t := range Topics {
		if t.ID == id {
			return t.Name
		}
	}
	return string(id)
}
