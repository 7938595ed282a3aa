// Package gifenc streams a sequence of frames into a looping GIF89a file.
//
// The header, logical screen descriptor and NETSCAPE2.0 loop extension are
// written when the encoder is created; each WriteFrame call quantizes one frame
// to a local colour table and appends it, so a frame is on its way to disk
// before the next one is touched. Output goes to a temporary file beside the
// destination and is renamed into place only after the trailer is written;
// failed runs leave nothing at the destination path.
package gifenc
