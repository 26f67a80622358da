/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"testing"
)

func TestBuildScoreGroups(t *testing.T) {
	players := []Player{
		{ID: 1, Name: "Alice", Rating: 1800},
		{ID: 2, Name: "Bob", Rating: 1700},
		{ID: 3, Name: "Carol", Rating: 1600},
		{ID: 4, Name: "Dan", Rating: 1500},
		{ID: 5, Name: "Eve", Rating: 1700},
	}
	standings := Standings{
		1: {Score: 1.0},
		2: {Score: 2.0},
		3: {Score: 1.0},
		4: {Score: 0.0},
		5: {Score: 1.0},
	}

	groups := BuildScoreGroups(players, standings)

	wantScores := []float64{2.0, 1.0, 0.0}
	if len(groups) != len(wantScores) {
		t.Fatalf("got %v groups; want %v", len(groups), len(wantScores))
	}
	for i, want := range wantScores {
		if groups[i].Score != want {
			t.Errorf("group %v: Score = %v; want %v", i, groups[i].Score, want)
		}
	}

	// within the 1.0 group: rating descending
	wantMembers := []PlayerID{1, 5, 3}
	got := groups[1].Members
	if len(got) != len(wantMembers) {
		t.Fatalf("1.0 group has %v members; want %v", len(got),
			len(wantMembers))
	}
	for i, want := range wantMembers {
		if got[i].ID != want {
			t.Errorf("1.0 group member %v = player %v; want %v", i,
				got[i].ID, want)
		}
	}
}

func TestBuildScoreGroupsRatingTie(t *testing.T) {
	players := []Player{
		{ID: 7, Rating: 1500},
		{ID: 3, Rating: 1500},
		{ID: 5, Rating: 1500},
	}
	standings := Standings{7: {}, 3: {}, 5: {}}

	groups := BuildScoreGroups(players, standings)
	if len(groups) != 1 {
		t.Fatalf("got %v groups; want 1", len(groups))
	}
	want := []PlayerID{3, 5, 7}
	for i, w := range want {
		if groups[0].Members[i].ID != w {
			t.Errorf("member %v = player %v; want %v", i,
				groups[0].Members[i].ID, w)
		}
	}
}
