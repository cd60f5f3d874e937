package handlers

import "fmt"

func orgResource(id uint) string {
	return fmt.Sprintf("org:%d", id)
}

func userResource(id uint) string {
	return fmt.Sprintf("user:%d", id)
}
