package domain

import "errors"

// 入力・結果に関する番兵エラー。設定エラーは config 側で起動時に弾くため、
// ここには実行時にパイプラインが扱う種別のみを置きます。
var (
	// ErrNoLyricLines は空または空白のみの入力を表します。
	// 実行は開始されず、警告として利用者へ提示されます。
	ErrNoLyricLines = errors.New("no valid lyric lines found")

	// ErrEmptyResult は整形式のレスポンスに利用可能な画像が無かったことを表します。
	// 行単位のソフト失敗であり、リトライも実行の中断も行いません。
	ErrEmptyResult = errors.New("response contained no usable image payload")

	// ErrBusy は別の実行が進行中であることを表します。
	ErrBusy = errors.New("a generation run is already in progress")
)

// TransientError はリトライ対象となる一時的な失敗（ネットワーク/HTTPエラー等）です。
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient generation failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient は err を一時的失敗として分類します。
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient は err がリトライ対象かどうかを判定します。
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
