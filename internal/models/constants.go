package models

// Categories — фиксированный набор категорий проектов.
var Categories = []string{
	"Development",
	"Design",
	"Content Writing",
	"Digital Marketing",
	"Virtual Assistant",
	"Video & Animation",
	"Legal & Finance",
	"Data Science",
	"Education & Tutoring",
	"Translation",
}

// IsValidCategory проверяет, входит ли категория в набор.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
