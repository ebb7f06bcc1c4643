// Package stepfile описывает, какие файлы считаются STEP: сервер и клиент проверяют имя одинаково.
package stepfile

import "strings"

// Extensions перечисляет допустимые расширения в нижнем регистре.
var Extensions = []string{".step", ".stp"}

// HasExtension сравнивает окончание имени без учёта регистра.
func HasExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}
