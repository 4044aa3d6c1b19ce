package keyboard

import "github.com/go-telegram/bot/models"

func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Tillbaka", callbackData)
}

func MainMenuButton() models.InlineKeyboardButton {
	return Button("🏠 Huvudmeny", "main")
}

func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Avbryt", callbackData)
}

func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Bekräfta", callbackData)
}

// ConfirmCancelRow is a single Bekräfta/Avbryt row.
func ConfirmCancelRow(confirmData, cancelData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmData),
		CancelButton(cancelData),
	}
}
