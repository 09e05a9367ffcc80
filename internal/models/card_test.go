package models

import (
	"testing"
	"time"
)

func TestCardDoneRoundTrip(t *testing.T) {
	card := Card{}
	if card.Done() {
		t.Fatal("new card should not be done")
	}

	card.SetDone(true)
	if !card.Done() {
		t.Fatal("SetDone(true) should make card done")
	}
	if card.DoneTime == nil {
		t.Fatal("SetDone(true) should set DoneTime")
	}

	// 已完成的卡片再次标记完成不应改写完成时间
	first := *card.DoneTime
	card.SetDone(true)
	if !card.DoneTime.Equal(first) {
		t.Errorf("SetDone(true) on a done card changed DoneTime from %v to %v", first, card.DoneTime)
	}

	card.SetDone(false)
	if card.Done() || card.DoneTime != nil {
		t.Fatal("SetDone(false) should clear DoneTime")
	}
}

func TestCardPriorityRoundTrip(t *testing.T) {
	card := Card{}

	card.SetPriority(3)
	if card.Type != "3" {
		t.Errorf("expected Type %q, got %q", "3", card.Type)
	}
	if card.Priority() != 3 {
		t.Errorf("expected priority 3, got %d", card.Priority())
	}

	// 非数字的存量数据退回最低优先级
	card.Type = "urgent"
	if card.Priority() != PriorityMin {
		t.Errorf("non-numeric type should yield %d, got %d", PriorityMin, card.Priority())
	}

	// 越界写入收敛到合法范围
	card.SetPriority(99)
	if card.Priority() != PriorityMax {
		t.Errorf("expected priority clamped to %d, got %d", PriorityMax, card.Priority())
	}
	card.SetPriority(-1)
	if card.Priority() != PriorityMin {
		t.Errorf("expected priority clamped to %d, got %d", PriorityMin, card.Priority())
	}
}

func TestCardPriorityDefault(t *testing.T) {
	card := Card{Type: ""}
	if card.Priority() != PriorityMin {
		t.Errorf("empty type should yield %d, got %d", PriorityMin, card.Priority())
	}
}

func TestArticleHeadlineAlias(t *testing.T) {
	article := Article{Title: "蜗牛笔记"}
	if article.Headline() != "蜗牛笔记" {
		t.Errorf("Headline should mirror Title, got %q", article.Headline())
	}
	article.SetHeadline("新标题")
	if article.Title != "新标题" {
		t.Errorf("SetHeadline should write Title, got %q", article.Title)
	}
}

func TestArticleVisible(t *testing.T) {
	cases := []struct {
		name    string
		article Article
		want    bool
	}{
		{"published", Article{Hidden: 0, Drafted: 0, Checked: 1}, true},
		{"draft", Article{Drafted: 1, Checked: 1}, false},
		{"hidden", Article{Hidden: 1, Checked: 1}, false},
		{"pending review", Article{Checked: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.article.Visible(); got != tc.want {
				t.Errorf("Visible() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFavoriteActive(t *testing.T) {
	f := Favorite{Canceled: 0, CreatedAt: time.Now()}
	if !f.Active() {
		t.Error("canceled=0 should be active")
	}
	f.Canceled = 1
	if f.Active() {
		t.Error("canceled=1 should not be active")
	}
}
