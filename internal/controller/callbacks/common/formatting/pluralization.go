package formatting

import "fmt"

// Plural picks the Swedish singular or plural form.
func Plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func Seats(n int) string {
	return Plural(n, "plats", "platser")
}

func Bookings(n int) string {
	return Plural(n, "bokning", "bokningar")
}
