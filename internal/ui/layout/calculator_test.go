package layout

import "testing"

func TestContentHeight(t *testing.T) {
	tests := []struct {
		height int
		opts   Opts
		want   int
	}{
		{40, Opts{PlayerBarHeight: 4}, 34},
		{40, Opts{PlayerBarHeight: 4, Searching: true}, 33},
		{3, Opts{PlayerBarHeight: 4}, 0},
	}
	for _, tt := range tests {
		if got := ContentHeight(tt.height, tt.opts); got != tt.want {
			t.Errorf("ContentHeight(%d, %+v) = %d, want %d", tt.height, tt.opts, got, tt.want)
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		opts          Opts
		want          Panels
	}{
		{
			name:  "queue only",
			width: 120, height: 40,
			opts: Opts{PlayerBarHeight: 4},
			want: Panels{QueueWidth: 120, QueueHeight: 34},
		},
		{
			name:  "side by side",
			width: 120, height: 40,
			opts: Opts{PlayerBarHeight: 4, Searching: true},
			want: Panels{QueueWidth: 60, QueueHeight: 33, ResultsWidth: 60, ResultsHeight: 33},
		},
		{
			name:  "odd width gives the extra column to the queue",
			width: 121, height: 40,
			opts: Opts{PlayerBarHeight: 4, Searching: true},
			want: Panels{QueueWidth: 61, QueueHeight: 33, ResultsWidth: 60, ResultsHeight: 33},
		},
		{
			name:  "stacked when narrow",
			width: 80, height: 40,
			opts: Opts{PlayerBarHeight: 4, Searching: true},
			want: Panels{QueueWidth: 80, QueueHeight: 17, ResultsWidth: 80, ResultsHeight: 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.width, tt.height, tt.opts); got != tt.want {
				t.Errorf("Compute(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestIsNarrow(t *testing.T) {
	if !IsNarrow(NarrowThreshold - 1) {
		t.Error("width below the threshold should be narrow")
	}
	if IsNarrow(NarrowThreshold) {
		t.Error("width at the threshold should not be narrow")
	}
}
