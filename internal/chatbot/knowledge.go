// Package chatbot implements the FAQ retrieval layer behind the chat relay:
// a fixed in-memory knowledge base and a pluggable relevance scorer.
package chatbot

// Entry is one knowledge-base record.
type Entry struct {
	ID      string
	Tags    []string
	Content string
}

// KnowledgeBase returns the fixed FAQ corpus, in canonical order. The order
// matters: ranking ties are broken by position.
func KnowledgeBase() []Entry {
	return []Entry{
		{
			ID:   "services-overview",
			Tags: []string{"services", "companionship", "errands", "housekeeping", "home visits", "socialization", "offer", "help"},
			Content: "ElderEase connects families with vetted volunteers for in-home elder care support. " +
				"We offer Companionship (friendly visits, conversation, shared activities), Light Housekeeping " +
				"(tidying, laundry, dishes), Running Errands (groceries, pharmacy pickups, post office), " +
				"Home Visits (wellness check-ins), and Socialization (accompanied outings and community events).",
		},
		{
			ID:   "pricing",
			Tags: []string{"price", "pricing", "cost", "rate", "rates", "fee", "fees", "charge", "much", "pay"},
			Content: "Our hourly rates are: Companionship 150, Light Housekeeping 170, Running Errands 200, " +
				"Home Visits 180, and Socialization 230. Rates are per hour per service. Experienced volunteers " +
				"with strong ratings carry a small quality surcharge of up to 12 percent, and a 5 percent " +
				"platform fee is added to every receipt. You always see the full itemized total before confirming.",
		},
		{
			ID:   "booking",
			Tags: []string{"book", "booking", "request", "schedule", "appointment", "reserve", "sign up"},
			Content: "To request care, log in as a guardian, choose the services you need, pick a date and a " +
				"start and end time, and tell us how many hours of each service you would like. You can add " +
				"notes for the volunteer and request a preferred volunteer you have worked with before. " +
				"You will receive a confirmation number right away.",
		},
		{
			ID:   "volunteers",
			Tags: []string{"volunteer", "volunteers", "caregiver", "vetted", "background", "join", "become"},
			Content: "All volunteers are screened and approved by our team before they can accept assignments. " +
				"Volunteers build a track record on the platform: completed visits and guardian ratings " +
				"determine their experience tier, from Associate through Proficient and Advanced to Expert. " +
				"Want to volunteer? Create a volunteer account and our admins will review your application.",
		},
		{
			ID:   "cancellation",
			Tags: []string{"cancel", "cancellation", "refund", "change", "reschedule"},
			Content: "You can cancel a pending request at any time before a volunteer accepts it, at no cost. " +
				"Once a volunteer has accepted, please contact us to arrange changes. To reschedule, cancel " +
				"the pending request and create a new one with the updated date and time.",
		},
		{
			ID:   "ratings",
			Tags: []string{"rating", "ratings", "review", "feedback", "confirm", "completed"},
			Content: "After a volunteer marks a visit completed, the guardian confirms the work and leaves a " +
				"rating from 1 to 5 stars with an optional comment. Ratings are how volunteers progress " +
				"through experience tiers, so honest feedback helps the whole community.",
		},
		{
			ID:   "conflicts",
			Tags: []string{"double", "overlap", "conflict", "availability", "time", "same day"},
			Content: "Volunteers can never be double-booked: the platform checks every acceptance against the " +
				"volunteer's other visits that day and rejects overlapping time ranges. Back-to-back visits " +
				"are allowed, so a volunteer can finish at 11:00 and start the next visit at 11:00.",
		},
		{
			ID:   "payments",
			Tags: []string{"payment", "receipt", "invoice", "bill", "commission", "total"},
			Content: "Each accepted request comes with an itemized receipt: every service line shows the base " +
				"hourly rate, the hours requested, the tier-adjusted rate, and the line amount. The receipt " +
				"subtotal plus the 5 percent platform commission gives the total. Receipts are frozen at " +
				"acceptance and never change afterwards.",
		},
		{
			ID:   "safety",
			Tags: []string{"safe", "safety", "trust", "emergency", "insurance", "security"},
			Content: "Safety comes first: volunteers are identity-checked and approved by administrators, " +
				"guardians see the volunteer's name and contact before the visit, and our support team is " +
				"available during every scheduled visit. For medical emergencies always call your local " +
				"emergency number first.",
		},
		{
			ID:   "account",
			Tags: []string{"account", "login", "password", "register", "profile", "email"},
			Content: "You can register as a guardian to request care or as a volunteer to provide it. " +
				"Use your email address to sign in. If you forget your password, use the reset link on the " +
				"login page or contact support to have it reset.",
		},
	}
}
