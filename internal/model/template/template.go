package template

// Template is a canned reply served for one intent. Body is html/template
// source and may reference {{.Sentiment}} and {{.Message}}.
type Template struct {
	Intent      string `json:"intent"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body"`
}

// Seed provides the canned replies shipped with the demo.
func Seed() []Template {
	return []Template{
		{
			Intent:      "test_drive",
			Title:       "Book a test drive",
			Description: "Scheduling flow for test-drive requests.",
			Body: `<strong>Let's get you behind the wheel!</strong><br>` +
				`Test drives run daily from 9am to 6pm and take about 30 minutes.<br>` +
				`<a href="#schedule" class="cta">Pick a time slot</a>, or reply with a day that works for you.`,
		},
		{
			Intent:      "info",
			Title:       "Vehicle information",
			Description: "Headline specs for product questions.",
			Body: `<strong>Quick facts</strong><ul>` +
				`<li>Range: up to 330 miles (EPA est.)</li>` +
				`<li>0-60 mph: 4.8 seconds</li>` +
				`<li>Charging: 200 miles in about 15 minutes on a fast charger</li>` +
				`</ul>Want the full spec sheet or a price breakdown?`,
		},
		{
			Intent:      "support",
			Title:       "Support hand-off",
			Description: "Acknowledges the detected sentiment and opens a ticket.",
			Body: `<strong>We're on it.</strong><br>` +
				`I picked up a <em>{{.Sentiment}}</em> tone in your message, so I've flagged this for our support team.<br>` +
				`Issue noted: "{{.Message}}"<br>` +
				`Meanwhile, try a restart and check the <a href="#status">service status page</a>. A specialist will follow up shortly.`,
		},
		{
			Intent:      "capabilities",
			Title:       "What I build",
			Description: "Overview of chatbot services.",
			Body: `<strong>Chatbots I build</strong><ul>` +
				`<li>Customer-support bots with sentiment-aware replies</li>` +
				`<li>Lead-qualification and booking assistants</li>` +
				`<li>FAQ and knowledge-base bots grounded in your docs</li>` +
				`<li>Slack, WhatsApp, and website widget integrations</li>` +
				`</ul>Which of these sounds closest to what you need?`,
		},
		{
			Intent:      "pricing",
			Title:       "Pricing",
			Description: "Package pricing for custom bots.",
			Body: `<strong>Pricing</strong><ul>` +
				`<li>Starter FAQ bot: from $500</li>` +
				`<li>Custom support bot with integrations: from $1,500</li>` +
				`<li>Ongoing maintenance: $150/month</li>` +
				`</ul>Every quote is fixed-price after a free 20-minute scoping call. Shall I send a booking link?`,
		},
		{
			Intent:      "portfolio",
			Title:       "Portfolio",
			Description: "Recent projects and live demos.",
			Body: `<strong>Recent work</strong><ul>` +
				`<li>Empathetic support bot for a fintech app (this demo!)</li>` +
				`<li>Test-drive booking assistant for an EV dealership</li>` +
				`<li>Internal HR helpdesk bot on Slack</li>` +
				`</ul><a href="#portfolio">See the case studies</a> or ask me about any of them.`,
		},
	}
}
