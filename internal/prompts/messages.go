package prompts

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot"

	"expungement-interview/internal/api"
)

// Все сообщения собираются в Telegram MarkdownV2.
// Любой текст, пришедший извне (ответы сервиса проверки, вопросы из YAML, штат), проходит через Text.

// Text экранирует служебные символы MarkdownV2
func Text(s string) string {
	return bot.EscapeMarkdown(s)
}

func Bold(s string) string {
	return "*" + Text(s) + "*"
}

func Italic(s string) string {
	return "_" + Text(s) + "_"
}

func Code(s string) string {
	return "`" + strings.NewReplacer("\\", "\\\\", "`", "\\`").Replace(s) + "`"
}

// Greeting - первое сообщение ассистента
func Greeting(region string) string {
	if region == "" {
		region = "your state"
	}
	return Text(fmt.Sprintf("Hello! I'm here to help you understand your eligibility for expungement in %s. "+
		"I'll ask you a few questions about your case. Let's begin.", region))
}

// Question форматирует вопрос с номером
func Question(index, total int, prompt string) string {
	return fmt.Sprintf("❓ %s\n\n%s", Bold(fmt.Sprintf("Question %d of %d:", index+1, total)), Text(prompt))
}

func Closing() string {
	return Text("Thank you for providing all that information. I'm now analyzing your case against the expungement laws. " +
		"This will just take a moment...")
}

// Progress возвращает процент пройденной анкеты
func Progress(answered, total int) int {
	if total == 0 {
		return 100
	}
	return answered * 100 / total
}

// DecisionSummary форматирует результат проверки для пользователя
func DecisionSummary(d *api.Decision) string {
	var b strings.Builder

	if d.Eligible {
		b.WriteString("✅ " + Bold("You Appear Eligible for Expungement") + "\n")
		b.WriteString(Text("Based on the information provided, your case may qualify for expungement.") + "\n\n")
	} else {
		b.WriteString("⚠️ " + Bold("You May Not Be Eligible at This Time") + "\n")
		b.WriteString(Text("Based on the information provided, your case may not qualify right now.") + "\n\n")
	}

	b.WriteString(fmt.Sprintf("📊 %s %s\n", Bold("Confidence Score:"), Text(fmt.Sprintf("%.0f%%", d.Confidence))))

	if len(d.KeyFindings) > 0 {
		b.WriteString("\n🔍 " + Bold("Key Findings:") + "\n")
		for _, f := range d.KeyFindings {
			b.WriteString("• " + Bold(f.Title))
			if f.Description != "" {
				b.WriteString(Text(" - " + f.Description))
			}
			b.WriteString("\n")
		}
	}

	if len(d.NextSteps) > 0 {
		b.WriteString("\n📝 " + Bold("Next Steps:") + "\n")
		for i, step := range d.NextSteps {
			b.WriteString(Text(fmt.Sprintf("%d. %s", i+1, step)) + "\n")
		}
	}

	b.WriteString("\n" + Italic("This is not legal advice. Consult an attorney about your specific case."))

	return b.String()
}

// Help - справка по командам бота
func Help(totalQuestions int) string {
	var b strings.Builder

	b.WriteString("🤖 " + Bold("Expungement eligibility assistant") + "\n\n")
	b.WriteString(Bold("Commands:") + "\n")
	b.WriteString(Text(`/start - Start the questionnaire
/state <name> - Set the state where you were convicted
/status - Show questionnaire progress
/result - Show your eligibility result (after finishing)
/restart - Reset the questionnaire
/stop - Stop the current questionnaire
/help - Show this message`))
	b.WriteString("\n\n" + Bold("How it works:") + "\n")
	b.WriteString(Text(fmt.Sprintf(`1. Use /start to begin
2. Answer %d short questions about your case
3. Dates work best as "March 4, 2019"
4. Yes/no questions accept answers like "yes", "no", "never"
5. We check your answers against expungement law and show the result`, totalQuestions)))

	return b.String()
}

func EvaluationUnavailable() string {
	return Text("⚠️ We couldn't check your eligibility right now. Your answers are saved, please try again in a few minutes.")
}
