// Package arch проверяет направление зависимостей между слоями internal/.
// Правила закреплены тестом, чтобы случайный импорт не размыл границы слоёв.
package arch
