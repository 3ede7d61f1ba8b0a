package screenplay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickify/stickify-e2e/internal/browser/browsertest"
)

func TestPoll(t *testing.T) {
	ctx := context.Background()

	t.Run("condition true before timeout", func(t *testing.T) {
		ready := time.Now().Add(30 * time.Millisecond)
		err := Poll(ctx, time.Second, 5*time.Millisecond, "ready", func(context.Context) (bool, error) {
			return time.Now().After(ready), nil
		})
		assert.NoError(t, err)
	})

	t.Run("condition never true", func(t *testing.T) {
		timeout := 40 * time.Millisecond
		err := Poll(ctx, timeout, 5*time.Millisecond, "the moon", func(context.Context) (bool, error) {
			return false, nil
		})

		var te *TimeoutError
		require.ErrorAs(t, err, &te)
		assert.GreaterOrEqual(t, te.Elapsed, timeout)
		assert.Equal(t, "the moon", te.Condition)
		assert.Contains(t, te.Error(), "the moon")
	})

	t.Run("condition error aborts", func(t *testing.T) {
		boom := errors.New("driver gone")
		calls := 0
		err := Poll(ctx, time.Second, time.Millisecond, "anything", func(context.Context) (bool, error) {
			calls++
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancellation aborts", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		err := Poll(ctx, time.Minute, 5*time.Millisecond, "never", func(context.Context) (bool, error) {
			return false, nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestWaitFor_ToAppear(t *testing.T) {
	flash := NewTarget("flash message", "#flash")

	t.Run("appears before timeout", func(t *testing.T) {
		driver := browsertest.New().AddAfter("#flash", 40*time.Millisecond, browsertest.NewElement("Saved"))
		actor := browsingActor(t, driver)

		err := actor.AttemptsTo(context.Background(), WaitFor(flash).ToAppear().Within(2*time.Second))
		assert.NoError(t, err)
	})

	t.Run("hidden element never appears", func(t *testing.T) {
		driver := browsertest.New().Add("#flash", browsertest.NewElement("Saved").Hidden())
		actor := browsingActor(t, driver)

		timeout := 60 * time.Millisecond
		err := actor.AttemptsTo(context.Background(), WaitFor(flash).Within(timeout))

		var te *TimeoutError
		require.ErrorAs(t, err, &te)
		assert.GreaterOrEqual(t, te.Elapsed, timeout)
		assert.Contains(t, te.Condition, "the flash message")

		var failed *ActionFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, 0, failed.Index)
	})

	t.Run("actor default timeout applies", func(t *testing.T) {
		driver := browsertest.New()
		actor := Named("Tester", WithWaitTimeout(30*time.Millisecond))
		require.NoError(t, actor.WhoCan(BrowseTheWebWith(driver)))

		err := actor.AttemptsTo(context.Background(), WaitFor(flash))
		var te *TimeoutError
		require.ErrorAs(t, err, &te)
		assert.GreaterOrEqual(t, te.Elapsed, 30*time.Millisecond)
		assert.Less(t, te.Elapsed, DefaultWaitTimeout)
	})
}

func TestWaitFor_ToDisappear(t *testing.T) {
	driver := browsertest.New().Add(".swal2-loader", browsertest.NewElement("Subiendo..."))
	driver.RemoveAfter(".swal2-loader", 40*time.Millisecond)
	actor := browsingActor(t, driver)

	err := actor.AttemptsTo(context.Background(),
		WaitFor(NewTarget("loader", ".swal2-loader")).ToDisappear().Within(2*time.Second),
	)
	assert.NoError(t, err)
}

func TestWaitFor_ToContainText(t *testing.T) {
	title := browsertest.NewElement("Cargando")
	driver := browsertest.New().Add("h2", title)
	actor := browsingActor(t, driver)

	go func() {
		time.Sleep(30 * time.Millisecond)
		title.SetText("Subir Nueva Canción")
	}()

	err := actor.AttemptsTo(context.Background(),
		WaitFor(NewTarget("title", "h2")).ToContainText("Nueva").Within(2*time.Second),
	)
	assert.NoError(t, err)
}

func TestEventually(t *testing.T) {
	driver := browsertest.New().SetPage("http://localhost:4200/upload", "Stickify")
	actor := browsingActor(t, driver)

	go func() {
		time.Sleep(30 * time.Millisecond)
		driver.SetPage("http://localhost:4200/home", "Stickify")
	}()

	err := actor.AttemptsTo(context.Background(),
		EventuallyWithin(2*time.Second, BrowserURL(), ContainsTheText("home")),
	)
	require.NoError(t, err)

	err = actor.AttemptsTo(context.Background(),
		EventuallyWithin(30*time.Millisecond, BrowserURL(), ContainsTheText("profile")),
	)
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Condition, "last answer")
}

func TestPause_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Pause(time.Hour).PerformAs(ctx, Named("Tester"))
	assert.ErrorIs(t, err, context.Canceled)
}
