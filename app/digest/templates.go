package digest

import (
	"fmt"
	"time"
)

// welcomeFallbackIntro is used when the intro generation fails or
// returns nothing; signup must never be blocked on the model.
const welcomeFallbackIntro = "Thanks for joining Signalist. You now have the tools to track markets and make smarter moves."

func buildDigestEmail(date time.Time, content string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>Market News — %s</h2>
%s
<p style="color: #888; font-size: 12px;">You are receiving this because you subscribed to the Signalist daily digest.</p>
</div>`, date.Format("January 2, 2006"), content)
}

func buildWelcomeEmail(name, intro string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>Welcome, %s!</h2>
<p>%s</p>
<p>Add stocks to your watchlist to get a personalized daily news digest.</p>
</div>`, name, intro)
}
