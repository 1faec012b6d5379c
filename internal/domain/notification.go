package domain

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 生成実行のメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// RunID は実行の識別子です。
	RunID string `json:"run_id"`

	// LineCount は処理対象となった歌詞行の数です。
	LineCount int `json:"line_count"`

	// ImageCount は収集された画像の数です。
	ImageCount int `json:"image_count"`

	// FailureCount は失敗した行の数です。
	FailureCount int `json:"failure_count"`

	// Backend は使用した画像生成バックエンド名です。(例: "imagen")
	Backend string `json:"backend"`
}
