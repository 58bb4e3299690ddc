package query

import "testing"

func TestPaginate_EmptyCursorFirstPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	conn, err := paginate(items, "", 2)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(conn.Items) != 2 || conn.Items[0] != 1 || conn.Items[1] != 2 {
		t.Fatalf("unexpected page: %+v", conn.Items)
	}
	if conn.HasPreviousPage || !conn.HasNextPage {
		t.Errorf("unexpected page flags: %+v", conn)
	}
}

func TestPaginate_FollowCursorToEnd(t *testing.T) {
	items := []int{1, 2, 3}
	first, err := paginate(items, "", 2)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	second, err := paginate(items, first.EndCursor, 2)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(second.Items) != 1 || second.Items[0] != 3 {
		t.Fatalf("unexpected second page: %+v", second.Items)
	}
	if second.HasNextPage || !second.HasPreviousPage {
		t.Errorf("unexpected page flags: %+v", second)
	}
}

func TestPaginate_InvalidCursorErrors(t *testing.T) {
	if _, err := paginate([]int{1, 2}, "not-base64-or-valid!!", 10); err == nil {
		t.Error("expected an error for a malformed cursor")
	}
}
