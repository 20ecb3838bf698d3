package stdlib

// Source returns the bundled header text for l. The text is authored to
// match the shape of the real CMU 15-122 C0 standard library headers
// (function signatures only, no bodies — headers are declarations, never
// definitions) closely enough to type-check real student programs
// against, without claiming to be a verbatim reproduction of any
// specific release.
func Source(l Lib) string {
	switch l {
	case Args:
		return argsHeader
	case Conio:
		return conioHeader
	case File:
		return fileHeader
	case Img:
		return imgHeader
	case Parse:
		return parseHeader
	case Rand:
		return randHeader
	case String:
		return stringHeader
	case Util:
		return utilHeader
	default:
		return ""
	}
}

const argsHeader = `
int args_int(string arg);
bool args_parse_int(string arg, int* x);
string[] args_strings_from_array(string arg);
`

const conioHeader = `
int print(string s);
void flush(void);
char eof(void);
int read(char* buf, int maxlen);
bool eof_char(char c);
`

const fileHeader = `
struct file_handle_header;
typedef struct file_handle_header* file_t;
file_t file_read(string filename);
string file_read_line(file_t f);
bool file_eof(file_t f);
void file_close(file_t f);
`

const imgHeader = `
struct image_header;
typedef struct image_header* image_t;
image_t image_create(int width, int height);
int image_width(image_t img);
int image_height(image_t img);
int image_get(image_t img, int x, int y);
void image_set(image_t img, int x, int y, int px);
`

const parseHeader = `
bool string_to_int(string s, int* x);
int parse_int(string s);
bool string_to_chars_array(string s, char[] a);
string int_to_string(int x);
`

const randHeader = `
struct rand_state_header;
typedef struct rand_state_header* rand_t;
rand_t init_rand(int seed);
int rand_int(rand_t gen);
`

const stringHeader = `
int string_length(string s);
char string_charat(string s, int idx);
string string_join(string a, string b);
string string_sub(string a, int start, int end);
bool string_equal(string a, string b);
int string_compare(string a, string b);
string char_to_string(char c);
string string_fromchars(char[] a);
char[] string_to_chars(string s);
string string_fromcstring(char[] a);
`

const utilHeader = `
int pow(int base, int exponent);
int abs(int x);
int min(int a, int b);
int max(int a, int b);
`
