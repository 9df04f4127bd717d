/*
Package clock exposes wall-clock times and durations to Starlark.

  outline: clock
    clock defines time-of-day and duration values for starlark
    path: clock
    functions:
      time(hours, minutes=0, seconds=0) time
        construct a time of day
      duration(hours=0, minutes=0, seconds=0) duration
        construct a duration; hours are unbounded
      parse_time(string) time
        parse an HH:MM:SS string
      parse_duration(string) duration
        parse an H:MM:SS string
      from_seconds(int) duration
        a duration of the given number of seconds
      between(time, time) duration
        distance between two times of day, in either order
    constants:
      midnight time
      zero, second, minute, hour duration

    types:
      time
        fields:
          hour int
          minute int
          second int
        functions:
          format() string
            the HH:MM:SS form
          plus(time) time
            wraparound sum of two times of day
          minus(time) time
            wraparound difference of two times of day
        operators:
          time == time = boolean
          time < time = boolean
          time + time = time
          time + duration = time
          time - time = duration
      duration
        fields:
          hours int
          minutes int
          seconds int
          total_seconds int
        functions:
          format() string
            the H:MM:SS form
        operators:
          duration == duration = boolean
          duration < duration = boolean
          duration + duration = duration
          duration - duration = duration
          duration + int = duration
          duration - int = duration
          duration * int = duration
          duration + time = time
*/
package clock
