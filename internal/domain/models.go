package domain

// Models lists every persistent entity in migration order.
func Models() []any {
	return []any{&User{}, &FoodEntry{}, &Goal{}, &MealPlan{}}
}
