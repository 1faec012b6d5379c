package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lyric-story-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"
)

// --- インターフェース定義 ---

type SlackNotifier interface {
	Notify(ctx context.Context, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	httpClient  httpkit.ClientInterface
	webhookURL  string
	slackClient *slack.Client
}

// NewSlackAdapter は Slack クライアントを初期化します。
// webhookURL が空の場合は通知を行わないアダプターを返します。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{webhookURL: webhookURL}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack client: %w", err)
	}

	return &SlackAdapter{
		httpClient:  httpClient,
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// Notify は生成実行の完了サマリーを Slack へ送信します。
func (a *SlackAdapter) Notify(ctx context.Context, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slack client is not configured, skipping notification", "run_id", req.RunID)
		return nil
	}

	icon := "🎨"
	if req.FailureCount > 0 {
		icon = "⚠️"
	}

	title := fmt.Sprintf("%s ビジュアルストーリーの生成が完了しました", icon)
	content := a.buildSlackContent(req)

	if err := a.slackClient.SendTextWithHeader(ctx, title, content); err != nil {
		return fmt.Errorf("failed to post to Slack: %w", err)
	}

	slog.Info("Sent completion notification to Slack", "run_id", req.RunID)
	return nil
}

// NotifyError は実行メタデータを含むエラー通知を送信します。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slack client is not configured, skipping error notification", "error", errDetail)
		return nil
	}

	title := "❌ 生成処理中にエラーが発生しました"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*実行ID:* `%s`\n", req.RunID))
	sb.WriteString(fmt.Sprintf("*バックエンド:* `%s`\n\n", req.Backend))

	// エラー詳細をコードブロックで囲むことで可読性を向上させます。
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("failed to post error notification to Slack: %w", err)
	}

	slog.Info("Sent error notification to Slack", "error", errDetail)
	return nil
}

// buildSlackContent は通知リクエストから Slack メッセージ本文を組み立てます。
func (a *SlackAdapter) buildSlackContent(req domain.NotificationRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**実行ID:** `%s`\n", req.RunID))
	sb.WriteString(fmt.Sprintf("**バックエンド:** `%s`\n", req.Backend))
	sb.WriteString(fmt.Sprintf("**処理行数:** %d\n", req.LineCount))
	sb.WriteString(fmt.Sprintf("**生成画像数:** %d\n", req.ImageCount))

	if req.FailureCount > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️ **失敗した行:** %d\n", req.FailureCount))
	}

	return sb.String()
}
