package services

import (
	"log"
	"sort"
	"time"

	"github.com/truongduyng/futkui-sub001/models"
)

// ComposeFeed merges a group's messages and matches into one timeline ordered
// by createdAt ascending, ties broken by item id so the result is identical
// however the snapshot arrays were ordered. Items missing an id or createdAt
// are dropped, as is any second occurrence of an id. Pure function: composing
// a superset snapshot preserves the relative order of everything in the subset.
func ComposeFeed(messages []models.Message, matches []models.Match) []models.FeedItem {
	items := make([]models.FeedItem, 0, len(messages)+len(matches))

	for i := range messages {
		m := messages[i]
		if m.MessageID == "" || m.CreatedAt == "" {
			log.Printf("⚠️ Dropping malformed message in group %s (missing id or createdAt)", m.GroupID)
			continue
		}
		items = append(items, models.FeedItem{
			Kind:      models.FeedItemMessage,
			ID:        m.MessageID,
			CreatedAt: m.CreatedAt,
			Message:   &messages[i],
		})
	}

	for i := range matches {
		mt := matches[i]
		if mt.MatchID == "" || mt.CreatedAt == "" {
			log.Printf("⚠️ Dropping malformed match in group %s (missing id or createdAt)", mt.GroupID)
			continue
		}
		items = append(items, models.FeedItem{
			Kind:      models.FeedItemMatch,
			ID:        mt.MatchID,
			CreatedAt: mt.CreatedAt,
			Match:     &matches[i],
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt < items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})

	// Dedupe after sorting so which duplicate survives does not depend on
	// input order.
	seen := make(map[string]bool, len(items))
	deduped := items[:0]
	for _, item := range items {
		if seen[item.ID] {
			log.Printf("⚠️ Dropping duplicate feed item %s", item.ID)
			continue
		}
		seen[item.ID] = true
		deduped = append(deduped, item)
	}

	return deduped
}

// ProjectFeed composes a snapshot and attaches the per-viewer state the
// client renders: the owning poll for poll messages, reaction groups, and
// "my vote / my RSVP / my check-in" projections.
func ProjectFeed(snap *models.Snapshot, viewerID string, now time.Time) []models.FeedItemView {
	items := ComposeFeed(snap.Messages, snap.Matches)
	views := make([]models.FeedItemView, 0, len(items))

	for _, item := range items {
		view := models.FeedItemView{FeedItem: item}

		switch item.Kind {
		case models.FeedItemMessage:
			view.Reactions = GroupReactions(*item.Message)
			if item.Message.PollID != nil {
				if poll, ok := snap.Polls[*item.Message.PollID]; ok {
					p := poll
					view.Poll = &p
					view.PollView = ProjectPoll(poll, viewerID, now)
				}
			}
		case models.FeedItemMatch:
			view.MatchView = ProjectMatch(*item.Match, viewerID)
		}

		views = append(views, view)
	}

	return views
}

// GroupReactions folds a message's per-user reaction map into display groups,
// sorted by emoji (and users within a group) for stable output.
func GroupReactions(m models.Message) []models.ReactionGroup {
	if len(m.Reactions) == 0 {
		return nil
	}

	byEmoji := make(map[string][]string)
	for userID, emoji := range m.Reactions {
		byEmoji[emoji] = append(byEmoji[emoji], userID)
	}

	groups := make([]models.ReactionGroup, 0, len(byEmoji))
	for emoji, users := range byEmoji {
		sort.Strings(users)
		groups = append(groups, models.ReactionGroup{
			Emoji: emoji,
			Count: len(users),
			Users: users,
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Emoji < groups[j].Emoji })

	return groups
}
