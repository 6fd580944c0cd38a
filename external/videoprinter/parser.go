package videoprinter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/benchboost/benchboost/internal/domain/news"
)

var (
	dateMarkerRegex  = regexp.MustCompile(`\*{7}\s*(.+?)\s*\*{7}`)
	parenRegex       = regexp.MustCompile(`\(([^)]+)\)`)
	scoreRegex       = regexp.MustCompile(`(\d+)-(\d+)`)
	pointsRegex      = regexp.MustCompile(`(-?\d+)\s*pts\.\s*Tot\s*(-?\d+)\s*Pts`)
	assistRegex      = regexp.MustCompile(`ASSIST:.*?(-?\d+)\s*pts\.\s*Tot\s*(-?\d+)\s*Pts`)
	bonusAwardsRegex = regexp.MustCompile(`([A-Za-z\.\s'-]+?)\s*(\d+)\s*pts\.\s*Tot\s*(\d+)\s*Pts`)
)

// paragraph is one feed line with its colored spans extracted. Yellow spans
// carry player names and prices, cyan spans carry statuses and team names.
type paragraph struct {
	text   string
	yellow []string
	cyan   []string
}

// Parse walks the HTML fragment and classifies each paragraph into a feed
// update. Date marker lines set the date for the entries that follow.
func Parse(fragment string, recordedAt time.Time) []news.Update {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var updates []news.Update
	currentDate := ""

	for _, p := range collectParagraphs(doc) {
		text := strings.TrimSpace(p.text)
		if text == "" {
			continue
		}

		if m := dateMarkerRegex.FindStringSubmatch(text); m != nil {
			currentDate = m[1]
			continue
		}

		var update news.Update
		switch {
		case strings.Contains(text, "PRICE CHANGE"):
			update = parsePriceChange(p)
		case strings.Contains(text, "STATUS"):
			update = parseStatus(p)
		case strings.HasPrefix(text, "GOAL:"):
			update = parseGoal(p)
		case strings.HasPrefix(text, "YELLOW:"):
			update = parseCard(p, news.KindYellowCard)
		case strings.HasPrefix(text, "RED:"):
			update = parseCard(p, news.KindRedCard)
		case strings.HasPrefix(text, "BONUS:"):
			update = parseBonus(p)
		case strings.HasPrefix(text, "SAVES:"):
			update = parseCard(p, news.KindSaves)
		case strings.Contains(text, "TEAM NEWS"):
			update = parseTeamNews(p)
		case strings.HasPrefix(text, "FPL: KO"), strings.HasPrefix(text, "FPL: HT"), strings.HasPrefix(text, "FPL: FT"):
			update = news.Update{
				Kind:    news.KindMatchUpdate,
				Content: strings.TrimPrefix(text, "FPL: "),
			}
		default:
			continue
		}

		update.Date = currentDate
		update.RecordedAt = recordedAt
		update.ID = update.Fingerprint()
		updates = append(updates, update)
	}

	return updates
}

func collectParagraphs(doc *html.Node) []paragraph {
	var out []paragraph

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			out = append(out, paragraph{
				text:   nodeText(n),
				yellow: spanTexts(n, "yellow"),
				cyan:   spanTexts(n, "cyan"),
			})
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return out
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func spanTexts(n *html.Node, color string) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "span" {
			for _, attr := range node.Attr {
				if attr.Key == "style" && strings.Contains(attr.Val, color) {
					if text := strings.TrimSpace(nodeText(node)); text != "" {
						out = append(out, text)
					}
					break
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

// splitPlayerTeam handles the "Player Name (Team)" span format.
func splitPlayerTeam(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if m := parenRegex.FindStringSubmatch(raw); m != nil {
		name := strings.TrimSpace(strings.SplitN(raw, "(", 2)[0])
		return name, strings.TrimSpace(m[1])
	}
	return raw, ""
}

func parsePriceChange(p paragraph) news.Update {
	update := news.Update{Kind: news.KindPriceChange}

	if len(p.yellow) > 0 {
		update.Player, update.Team = splitPlayerTeam(p.yellow[0])
	}
	if len(p.yellow) > 1 {
		raw := strings.NewReplacer("£", "", "M", "", "m", "").Replace(p.yellow[len(p.yellow)-1])
		if price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			update.NewPrice = price
		}
	}

	if strings.Contains(strings.ToLower(p.text), "risen") {
		update.Direction = news.PriceRise
	} else {
		update.Direction = news.PriceFall
	}

	return update
}

func parseStatus(p paragraph) news.Update {
	update := news.Update{Kind: news.KindStatus}

	if len(p.yellow) > 0 {
		update.Player, update.Team = splitPlayerTeam(p.yellow[0])
	}
	if len(p.cyan) > 0 {
		update.Status = p.cyan[0]
	}

	return update
}

func parseGoal(p paragraph) news.Update {
	update := news.Update{Kind: news.KindGoal}

	if len(p.cyan) > 0 {
		update.HomeTeam = p.cyan[0]
	}
	if len(p.cyan) > 1 {
		update.AwayTeam = p.cyan[1]
	}
	if m := scoreRegex.FindStringSubmatch(p.text); m != nil {
		home, _ := strconv.Atoi(m[1])
		away, _ := strconv.Atoi(m[2])
		update.HomeScore = &home
		update.AwayScore = &away
	}
	if len(p.yellow) > 0 {
		update.Player = p.yellow[0]
	}
	if m := pointsRegex.FindStringSubmatch(p.text); m != nil {
		points, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		update.Points = &points
		update.TotalPoints = &total
	}

	if strings.Contains(p.text, "ASSIST:") {
		if len(p.yellow) > 1 {
			update.Assist = p.yellow[1]
		}
		if m := assistRegex.FindStringSubmatch(p.text); m != nil {
			points, _ := strconv.Atoi(m[1])
			total, _ := strconv.Atoi(m[2])
			update.AssistPoints = &points
			update.AssistTotal = &total
		}
	}

	return update
}

func parseCard(p paragraph, kind news.Kind) news.Update {
	update := news.Update{Kind: kind}

	if len(p.yellow) > 0 {
		update.Player, update.Team = splitPlayerTeam(p.yellow[0])
	}
	if m := pointsRegex.FindStringSubmatch(p.text); m != nil {
		points, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		update.Points = &points
		update.TotalPoints = &total
	}

	return update
}

func parseBonus(p paragraph) news.Update {
	update := news.Update{Kind: news.KindBonus}

	if len(p.cyan) > 0 {
		update.HomeTeam = p.cyan[0]
	}
	if len(p.cyan) > 1 {
		update.AwayTeam = p.cyan[1]
	}

	for _, m := range bonusAwardsRegex.FindAllStringSubmatch(p.text, -1) {
		bonus, _ := strconv.Atoi(m[2])
		total, _ := strconv.Atoi(m[3])
		update.BonusAwards = append(update.BonusAwards, news.BonusAward{
			Player:      strings.TrimSpace(m[1]),
			BonusPoints: bonus,
			TotalPoints: total,
		})
	}

	return update
}

func parseTeamNews(p paragraph) news.Update {
	update := news.Update{Kind: news.KindTeamNews}

	if len(p.cyan) > 0 {
		update.Content = p.cyan[0]
	} else {
		update.Content = strings.TrimSpace(p.text)
	}

	return update
}
