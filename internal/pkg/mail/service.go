package mail

import (
	"context"
	"fmt"
	"strings"

	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Mailer 郵件寄送介面
type Mailer interface {
	SendExpiryReminder(ctx context.Context, to string, items []common.InventoryItem) error
	SendRecipeSuggestion(ctx context.Context, to string, recipes []common.GeneratedRecipe) error
	SendWelcome(ctx context.Context, to string) error
}

// NewMailer 依設定建立郵件服務
// 未設定 SMTP 主機時回傳只記錄不寄送的實作
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.Mail.Enabled() {
		common.LogInfo("郵件服務走示範模式，只記錄不寄送")
		return &logMailer{}
	}
	return &smtpMailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPEmail, cfg.Mail.SMTPPassword),
	}
}

// smtpMailer SMTP 郵件服務
type smtpMailer struct {
	config *config.Config
	dialer *gomail.Dialer
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.config.Mail.SMTPEmail, m.config.Mail.SenderName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		common.LogError("郵件寄送失敗",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return common.NewError(common.ErrMailServiceError.Code, "郵件寄送失敗", common.ErrMailServiceError.Status, err)
	}

	common.LogInfo("郵件已寄出",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// SendExpiryReminder 寄送即期食材提醒
func (m *smtpMailer) SendExpiryReminder(ctx context.Context, to string, items []common.InventoryItem) error {
	return m.send(to, "FridgeChef 提醒：食材即將到期", expiryReminderBody(items))
}

// SendRecipeSuggestion 寄送食譜建議
func (m *smtpMailer) SendRecipeSuggestion(ctx context.Context, to string, recipes []common.GeneratedRecipe) error {
	return m.send(to, "FridgeChef 食譜建議", recipeSuggestionBody(recipes))
}

// SendWelcome 寄送歡迎信
func (m *smtpMailer) SendWelcome(ctx context.Context, to string) error {
	return m.send(to, "歡迎使用 FridgeChef", welcomeBody())
}

// logMailer 示範模式郵件服務，只記錄寄送意圖
type logMailer struct{}

func (m *logMailer) SendExpiryReminder(ctx context.Context, to string, items []common.InventoryItem) error {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, fmt.Sprintf("%s (%d 天)", it.Name, it.DaysLeft))
	}
	common.LogInfo("示範模式：略過即期提醒郵件",
		zap.String("to", to),
		zap.Strings("items", names),
	)
	return nil
}

func (m *logMailer) SendRecipeSuggestion(ctx context.Context, to string, recipes []common.GeneratedRecipe) error {
	common.LogInfo("示範模式：略過食譜建議郵件",
		zap.String("to", to),
		zap.Int("recipe_count", len(recipes)),
	)
	return nil
}

func (m *logMailer) SendWelcome(ctx context.Context, to string) error {
	common.LogInfo("示範模式：略過歡迎郵件", zap.String("to", to))
	return nil
}

// expiryReminderBody 組出即期提醒內文
func expiryReminderBody(items []common.InventoryItem) string {
	var sb strings.Builder
	sb.WriteString("<h2>以下食材即將到期</h2><ul>")
	for _, it := range items {
		fmt.Fprintf(&sb, "<li><b>%s</b>：剩 %d 天（%s 到期）</li>",
			it.Name, it.DaysLeft, it.ExpiryDate.Format("2006-01-02"))
	}
	sb.WriteString("</ul><p>打開 FridgeChef 看看可以煮什麼，別讓食材進垃圾桶。</p>")
	return sb.String()
}

// recipeSuggestionBody 組出食譜建議內文
func recipeSuggestionBody(recipes []common.GeneratedRecipe) string {
	var sb strings.Builder
	sb.WriteString("<h2>今天可以煮這些</h2>")
	for _, r := range recipes {
		fmt.Fprintf(&sb, "<h3>%s</h3><p>%s · %s · 符合度 %d%%</p>",
			r.Name, r.Time, r.Difficulty, r.MatchPercentage)
	}
	return sb.String()
}

func welcomeBody() string {
	return "<h2>歡迎使用 FridgeChef</h2><p>拍一張冰箱照片，我們幫你找出能煮的菜。</p>"
}
