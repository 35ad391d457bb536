// Package month реализует календарную арифметику месяцев для расчёта
// дат окончания абонементов.
package month

import "time"

// AddMonths сдвигает дату на указанное количество календарных месяцев.
// В отличие от time.AddDate, день месяца прижимается к последнему дню
// целевого месяца, а не переносится на следующий:
// 2024-01-31 + 3 месяца = 2024-04-30, а не 2024-05-01.
func AddMonths(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month()+time.Month(months), 1,
		d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())

	day := d.Day()
	if last := lastDay(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// lastDay возвращает номер последнего дня месяца даты d.
func lastDay(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}
