package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateTimeLayout — формат дат в текстовом экспорте.
const dateTimeLayout = "02.01.2006 15:04:05"

// FormatDateTime форматирует метку времени; нулевое время дает пустую строку.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// FormatPhoneNumber приводит номер к виду с ведущим плюсом.
func FormatPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}

// Валюты без дробной части.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
	"ISK": true,
}

// FormatMoneyAmount форматирует сумму в минимальных единицах валюты.
func FormatMoneyAmount(amount int64, currency string) string {
	if currency == "" {
		return strconv.FormatInt(amount, 10)
	}
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return fmt.Sprintf("%d %s", amount, currency)
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, currency)
}
