package payments

type Plan struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Benefit  string  `json:"benefit" validate:"required"`
	MaxStaff int     `json:"max_staff" validate:"required"`
	Price    float32 `json:"price" validate:"required"` // In USD, per month
}

var Plans = []Plan{
	{
		"starter",
		"Starter Plan",
		"Timeline dashboard for one location",
		10,
		9.99,
	},
	{
		"team",
		"Team Plan",
		"Deadline alerts and webpush notifications",
		50,
		29.99,
	},
	{
		"enterprise",
		"Enterprise Plan",
		"Unlimited staff and priority support",
		1000,
		99.99,
	},
}
