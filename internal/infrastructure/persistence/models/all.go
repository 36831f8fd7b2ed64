package models

// All lists every persistence model, in dependency order.
func All() []any {
	return []any{
		&UserModel{},
		&SprintModel{},
		&TicketModel{},
		&TicketHistoryModel{},
		&TagModel{},
		&CommentModel{},
		&QATestModel{},
		&ImageModel{},
	}
}
