package mongo

import "interviewai/internal/models"

// DefaultQuestions is the starter question bank.
func DefaultQuestions() []models.Question {
	return []models.Question{
		{Category: "JavaScript", Question: "Explain the concept of closure in JavaScript and provide an example.", Difficulty: "medium"},
		{Category: "React", Question: "Describe the lifecycle methods of a React component and their use cases.", Difficulty: "medium"},
		{Category: "JavaScript", Question: "What is the difference between null and undefined in JavaScript? Provide examples.", Difficulty: "easy"},
		{Category: "React", Question: "Explain the concept of state and props in React and how they differ.", Difficulty: "easy"},
		{Category: "JavaScript", Question: "Describe the differences between var, let, and const in JavaScript.", Difficulty: "easy"},
		{Category: "React", Question: "What is the purpose of the useContext hook in React? Provide an example.", Difficulty: "medium"},
		{Category: "JavaScript", Question: "Explain the concept of asynchronous programming in JavaScript and provide an example.", Difficulty: "medium"},
		{Category: "React", Question: "Describe the differences between functional and class components in React.", Difficulty: "easy"},
		{Category: "JavaScript", Question: "What is the purpose of the this keyword in JavaScript? Provide examples.", Difficulty: "medium"},
		{Category: "React", Question: "Explain the concept of React hooks and provide examples of their usage.", Difficulty: "medium"},
	}
}
