// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/lumo/internal/core/expense"
	"github.com/taibuivan/lumo/internal/core/task"
)

// # Canned Responses
//
// These are returned verbatim without touching the upstream model. Clients
// may pattern-match on them, so treat the exact wording as part of the API.

const (
	msgNoExpensesToAnalyze = "📊 No expenses to analyze yet. Add some expenses first!"
	msgAllTasksCompleted   = "✅ All tasks completed! Great job!"
	msgNoTasks             = "No tasks yet."
	msgNoExpenses          = "No expenses tracked yet."
)

// # System Instructions

const (
	suggestSystemPrompt = `You are a helpful personal productivity assistant.
Provide brief, actionable suggestions based on the user's tasks and spending.
Keep responses concise (2-3 sentences max). Use emojis sparingly.
Consider the time of day when making suggestions.`

	budgetSystemPrompt = `You are a financial advisor assistant.
Analyze the user's spending and provide:
1. A brief summary of their spending patterns
2. One specific area they could reduce spending
3. One positive observation about their finances
Keep the response under 100 words. Use emojis for visual appeal.`

	prioritizeSystemPrompt = `You are a productivity expert.
Analyze the tasks and suggest a priority order.
Consider the time of day and task types.
Provide brief reasoning (1 sentence per task).
Format: numbered list with task name and reason.`

	chatSystemPrompt = "You are a helpful SaaS personal assistant."
)

// # Prompt Assembly
//
// Pure functions: they take a snapshot of the user's data plus the current
// time and return the user-role prompt content. Keeping them side-effect
// free makes the exact prompt text unit-testable.

// formatTaskLines renders the full task list as prompt bullets.
func formatTaskLines(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return msgNoTasks
	}

	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		status := "pending"
		if t.Completed {
			status = "done"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", t.Title, status))
	}
	return strings.Join(lines, "\n")
}

// formatSpending renders the spending summary for prompt embedding.
func formatSpending(summary *expense.Summary) string {
	if summary == nil || len(summary.Categories) == 0 {
		return msgNoExpenses
	}

	lines := make([]string, 0, len(summary.Categories))
	for _, ct := range summary.Categories {
		lines = append(lines, fmt.Sprintf("  - %s: $%.2f", ct.Category, ct.Total))
	}
	return fmt.Sprintf("Total: $%.2f\nCategories:\n%s", summary.Total, strings.Join(lines, "\n"))
}

// buildSuggestPrompt assembles the user prompt for a next-action suggestion.
func buildSuggestPrompt(now time.Time, tasks []*task.Task, summary *expense.Summary) string {
	currentTime := now.Format("15:04 on Monday, January 02")

	return fmt.Sprintf(
		"Current time: %s\n\nMy tasks:\n%s\n\nMy spending:\n%s\n\nWhat should I focus on next?",
		currentTime, formatTaskLines(tasks), formatSpending(summary),
	)
}

// buildBudgetPrompt assembles the user prompt for a budget analysis.
//
// Callers must short-circuit on an empty summary before reaching this.
func buildBudgetPrompt(summary *expense.Summary) string {
	lines := make([]string, 0, len(summary.Categories))
	for _, ct := range summary.Categories {
		lines = append(lines, fmt.Sprintf("- %s: $%.2f", ct.Category, ct.Total))
	}

	return fmt.Sprintf(
		"Total spending: $%.2f\n\nBreakdown:\n%s",
		summary.Total, strings.Join(lines, "\n"),
	)
}

// buildPrioritizePrompt assembles the user prompt for task prioritization.
//
// Callers must filter to pending tasks and short-circuit on an empty list
// before reaching this.
func buildPrioritizePrompt(now time.Time, pending []*task.Task) string {
	currentTime := now.Format("15:04 on Monday")

	lines := make([]string, 0, len(pending))
	for _, t := range pending {
		lines = append(lines, fmt.Sprintf("%s. %s", t.ID, t.Title))
	}

	return fmt.Sprintf(
		"Current time: %s\n\nPending tasks:\n%s\n\nSuggest priority order:",
		currentTime, strings.Join(lines, "\n"),
	)
}
