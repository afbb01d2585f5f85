package web

import "unbelong/pkg/models"

// User-facing strings. The gallery is Japanese-only.
const (
	MsgNoIllustrations    = "まだイラストが投稿されていません。"
	MsgLoadFailed         = "イラストの読み込みに失敗しました"
	MsgNotFound           = "イラストが見つかりませんでした"
	MsgPageNotFound       = "ページが見つかりませんでした"
	MsgInvalidCredentials = "ユーザー名またはパスワードが正しくありません"
	MsgLoginFailed        = "ログインに失敗しました。しばらくしてから再度お試しください"
	MsgAdminNoItems       = "イラストがありません。"
	MsgWorksLoadFailed    = "作品の読み込みに失敗しました"
	MsgAll                = "すべて"
)

func StatusLabel(s models.IllustrationStatus) string {
	switch s {
	case models.StatusPublished:
		return "公開"
	case models.StatusDraft:
		return "下書き"
	case models.StatusArchived:
		return "アーカイブ"
	}
	return string(s)
}

func CategoryLabel(c models.Category) string {
	switch c {
	case models.CategoryManga:
		return "マンガ"
	case models.CategoryIllustration:
		return "イラスト"
	}
	return string(c)
}
