//   This project is the class information backend: homework and assessment notices, the weekly timetable and school meals.
//   Class Info Copyright (C) 2025 Class Info contributors
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ShutdownTimeout bounds how long in-flight requests may drain.
const ShutdownTimeout = 10 * time.Second

// serve runs srv on ln until stop is closed, then shuts it down. It only
// returns once Shutdown has finished, so callers may release what the
// handlers use afterwards.
func serve(srv *http.Server, ln net.Listener, stop <-chan struct{}, timeout time.Duration) error {
	shutdown := make(chan error, 1)
	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		shutdown <- srv.Shutdown(ctx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	return errors.Wrap(<-shutdown, "shutdown")
}
