package chatbot

const (
	UnknownID   = "unknown"
	ForbiddenID = "forbidden_admin"

	WelcomeMessage   = "👋 Hi! I’m SmartRide Assistant — how can I help?"
	ForbiddenReply   = "I cannot provide admin or internal financial details. Please contact support or your admin directly."
	unknownReplyText = `Sorry, I didn't understand that. Try asking "How to post a ride" or "How to book a ride".`
)

// adminKeywords short-circuit matching: admin and financial details are
// never answered.
var adminKeywords = []string{
	"admin", "commission", "withdraw", "site admin", "who is admin",
	"admin email", "admin contact", "admin details",
}

func defaultIntents() []Intent {
	return []Intent{
		{
			ID:       "greeting",
			Patterns: []string{"hi", "hello", "hey", "hiya", "good morning", "good afternoon", "good evening"},
			Reply:    "Hi! 👋 I'm SmartRide Assistant. I can help you post rides, search & book rides, and explain the flow. Ask me: 'How to post a ride' or 'How to book a ride'.",
		},
		{
			ID:       "how_post_ride",
			Patterns: []string{"post ride", "post a ride", "how to post", "create ride", "share ride"},
			Reply: `To post a ride as a driver:
1) Click 'Continue as Driver' or open Driver Dashboard.
2) Register / Login as a DRIVER.
3) Go to "Post Ride" and enter source, destination, date, time, seats and price per seat.
4) Submit — passengers will request seats and you'll see requests under "My Rides". Approve them to confirm bookings.`,
		},
		{
			ID:       "how_book_ride",
			Patterns: []string{"book ride", "how to book", "search ride", "request ride", "how to request"},
			Reply: `To request/book a ride as a passenger:
1) Click 'Continue as Passenger' and login / register.
2) Open 'Search' and enter From, To, Date.
3) Find a matching ride and choose seats.
4) Click 'Request Ride' to send a booking request (status will be PENDING).
5) Wait for driver approval. After driver approves, proceed to payment in 'My Bookings'.`,
		},
		{
			ID:       "payment_flow",
			Patterns: []string{"payment", "pay now", "how to pay", "payment methods", "cash", "upi", "card"},
			Reply: `Payment flow:
- After driver approves your request, go to My Bookings → Pay Now.
- Choose a payment method (CASH / UPI / CREDIT / WALLET).
- For CASH, you'll pay the driver at ride time (status remains pending until driver confirms).
- For online methods, payment is processed immediately and booking is confirmed.`,
		},
		{
			ID:       "profile_info",
			Patterns: []string{"profile", "view profile", "user profile", "driver profile"},
			Reply:    `You can view any user profile by clicking 'View profile' on a booking or ride card. Profiles show name, joined date, vehicle (if driver), ratings and recent reviews.`,
		},
		{
			ID:       "reviews",
			Patterns: []string{"review", "leave review", "how to review", "ratings"},
			Reply: `Leaving reviews:
- After a completed ride (driver or passenger), find the booking in My Bookings / My Rides.
- Click 'Leave Review' next to the completed booking.
- Provide a rating (1-5) and an optional comment. Reviews are visible on the user's profile.`,
		},
		{
			ID:       "contact_numbers",
			Patterns: []string{"phone", "contact", "call", "mobile number"},
			Reply: `Contacting users:
- Driver's and passenger's mobile numbers appear on booking/ride details (when available). Use them to call the other party if needed.`,
		},
		{
			ID:    UnknownID,
			Reply: unknownReplyText,
		},
	}
}
