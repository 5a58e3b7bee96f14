// This file is part of GopherAdvance.
//
// GopherAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAdvance.  If not, see <https://www.gnu.org/licenses/>.

// Package regression facilitates the regression testing of emulation code. By
// adding test results to a database, the tests can be rerun automatically and
// checked for consistency.
//
// Currently, two main types of test are supported. First the digest test. This
// test runs an image for a set number of frames, saving the video digest
// and/or the audio digest at the end of the run. Rerunning the test runs the
// image again and compares the new digests with the stored ones.
//
// Secondly, the script test. The script is a Lua script that drives the
// console through the scripting package. The output of the script is hashed
// and compared against the stored value when the test is rerun. The script is
// copied into the regression scripts directory when the test is added.
//
// All tests are run with the default hardware preferences so that changes to
// the user's preferences do not cause regression failures.
package regression
