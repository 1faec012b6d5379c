package generator

import (
	"context"

	"lyric-story-web/internal/domain"
)

// ImageRef は生成された1枚分の画像参照です。
// バックエンドに応じて Data (インラインバイト列) か URL (ホスト済み参照) の
// どちらかが埋まります。
type ImageRef struct {
	Data     []byte
	MimeType string
	URL      string
}

// ImageGenerator はパイプラインが利用する画像生成の統合窓口です。
// バックエンド間のトランスポートやフォーマットの差異はアダプター側で吸収します。
//
// エラーの分類規約:
//   - 通信・HTTP・API 呼び出しの失敗は domain.Transient でラップして返す
//     (パイプラインがリトライします。アダプター内ではリトライしません)
//   - 整形式だが画像が1枚も取れないレスポンスは domain.ErrEmptyResult を返す
type ImageGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]ImageRef, error)
}
